package internal

import (
	"testing"

	"github.com/lurknmore/lurk/pkg/types"
)

func sampleForest() []*types.Comment {
	return []*types.Comment{
		{ID: "c1", Author: "alice", Depth: 0, Replies: []*types.Comment{
			{ID: "c2", Author: "bob", Depth: 1},
			{ID: "c3", Author: "alice", Depth: 1, Replies: []*types.Comment{
				{ID: "c4", Author: "carol", Depth: 2},
			}},
		}},
		{ID: "c5", Author: "dave", Depth: 0},
	}
}

func TestCommentTree_FlattenOrder(t *testing.T) {
	tree := NewCommentTree(sampleForest())

	flat := tree.Flatten()
	want := []string{"c1", "c2", "c3", "c4", "c5"}

	if len(flat) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(flat))
	}
	for i, id := range want {
		if flat[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, flat[i].ID)
		}
	}
}

func TestCommentTree_Count(t *testing.T) {
	if got := NewCommentTree(sampleForest()).Count(); got != 5 {
		t.Errorf("expected 5 comments, got %d", got)
	}
	if got := NewCommentTree(nil).Count(); got != 0 {
		t.Errorf("expected 0 comments for empty forest, got %d", got)
	}
}

func TestCommentTree_MaxDepth(t *testing.T) {
	if got := NewCommentTree(sampleForest()).MaxDepth(); got != 2 {
		t.Errorf("expected max depth 2, got %d", got)
	}
	if got := NewCommentTree(nil).MaxDepth(); got != -1 {
		t.Errorf("expected -1 for empty forest, got %d", got)
	}
}

func TestCommentTree_Find(t *testing.T) {
	tree := NewCommentTree(sampleForest())

	found := tree.Find(func(c *types.Comment) bool { return c.Author == "carol" })
	if found == nil || found.ID != "c4" {
		t.Errorf("expected to find c4, got %v", found)
	}

	if tree.Find(func(c *types.Comment) bool { return c.Author == "nobody" }) != nil {
		t.Error("expected nil for no match")
	}
}

func TestCommentTree_GetByID(t *testing.T) {
	tree := NewCommentTree(sampleForest())

	if got := tree.GetByID("c3"); got == nil || got.Depth != 1 {
		t.Errorf("expected c3 at depth 1, got %v", got)
	}
	if tree.GetByID("zz") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestCommentTree_SkipsNilNodes(t *testing.T) {
	tree := NewCommentTree([]*types.Comment{nil, {ID: "c1"}})
	if got := tree.Count(); got != 1 {
		t.Errorf("expected nil nodes to be skipped, got count %d", got)
	}
}
