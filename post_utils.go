package lurk

import (
	"sort"

	"github.com/lurknmore/lurk/internal"
	"github.com/lurknmore/lurk/pkg/types"
)

// SortKey names a post ordering for SortPosts.
type SortKey string

const (
	// SortByComments orders posts by comment count, highest first.
	SortByComments SortKey = "comments"
	// SortByScore orders posts by score, highest first.
	SortByScore SortKey = "score"
	// SortByUpvotes orders posts by upvote count, highest first.
	SortByUpvotes SortKey = "upvotes"
	// SortByNewest orders posts by creation time, newest first.
	SortByNewest SortKey = "new"
)

// SortPosts returns a new slice ordered by the given key. The input slice
// is not modified. An unknown key returns the posts in their original order.
func SortPosts(posts []*types.Post, key SortKey) []*types.Post {
	sorted := make([]*types.Post, len(posts))
	copy(sorted, posts)

	switch key {
	case SortByComments:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].NumComments > sorted[j].NumComments })
	case SortByScore:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	case SortByUpvotes:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ups > sorted[j].Ups })
	case SortByNewest:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedUTC > sorted[j].CreatedUTC })
	}
	return sorted
}

// DedupePosts removes posts sharing an id, keeping the first occurrence and
// preserving order. The input slice is not modified.
func DedupePosts(posts []*types.Post) []*types.Post {
	seen := make(map[string]struct{}, len(posts))
	result := make([]*types.Post, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		if _, ok := seen[post.ID]; ok {
			continue
		}
		seen[post.ID] = struct{}{}
		result = append(result, post)
	}
	return result
}

// CommentTree provides utility methods for working with a comment forest.
type CommentTree interface {
	Flatten() []*types.Comment
	Walk(func(*types.Comment))
	Find(func(*types.Comment) bool) *types.Comment
	GetByID(string) *types.Comment
	Count() int
	MaxDepth() int
}

// NewCommentTree creates a new CommentTree from a slice of top-level comments.
func NewCommentTree(comments []*types.Comment) CommentTree {
	return internal.NewCommentTree(comments)
}
