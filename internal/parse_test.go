package internal

import (
	"encoding/json"
	"errors"
	"testing"

	pkgerrs "github.com/lurknmore/lurk/pkg/errors"
	"github.com/lurknmore/lurk/pkg/types"
)

func mustThing(t *testing.T, kind string, data string) *types.Thing {
	t.Helper()
	return &types.Thing{Kind: kind, Data: json.RawMessage(data)}
}

func TestParsePost_Defaults(t *testing.T) {
	parser := NewParser()

	// Raw post lacking ups, num_comments, over_18 and author.
	post, err := parser.ParsePost(json.RawMessage(`{"id": "abc", "title": "hello", "permalink": "/r/golang/comments/abc/hello/"}`))
	if err != nil {
		t.Fatalf("ParsePost failed: %v", err)
	}

	if post.Ups != 0 {
		t.Errorf("expected ups 0, got %d", post.Ups)
	}
	if post.NumComments != 0 {
		t.Errorf("expected num_comments 0, got %d", post.NumComments)
	}
	if post.Over18 {
		t.Error("expected over_18 false")
	}
	if post.Author != types.DeletedAuthor {
		t.Errorf("expected author %q, got %q", types.DeletedAuthor, post.Author)
	}
	if post.Title != "hello" {
		t.Errorf("expected title hello, got %q", post.Title)
	}
}

func TestParsePost_DualShape(t *testing.T) {
	parser := NewParser()

	bare := `{"id": "abc", "title": "hello", "author": "alice"}`
	wrapped := `{"kind": "t3", "data": {"id": "abc", "title": "hello", "author": "alice"}}`

	for name, payload := range map[string]string{"bare": bare, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			post, err := parser.ParsePost(json.RawMessage(payload))
			if err != nil {
				t.Fatalf("ParsePost failed: %v", err)
			}
			if post.ID != "abc" || post.Title != "hello" || post.Author != "alice" {
				t.Errorf("unexpected post: %+v", post)
			}
		})
	}
}

func TestParsePost_WebURLDerived(t *testing.T) {
	parser := NewParser()

	// url deliberately points elsewhere; the canonical address must come
	// from the permalink.
	post, err := parser.ParsePost(json.RawMessage(`{"id": "abc", "permalink": "/r/golang/comments/abc/x/", "url": "https://example.com/external"}`))
	if err != nil {
		t.Fatalf("ParsePost failed: %v", err)
	}

	want := "https://www.reddit.com/r/golang/comments/abc/x/"
	if post.WebURL() != want {
		t.Errorf("expected web URL %q, got %q", want, post.WebURL())
	}
	if post.URL != "https://example.com/external" {
		t.Errorf("source URL should pass through, got %q", post.URL)
	}
}

// nestedReplyPayload builds a comment with one reply, whose own replies
// listing contains only a load-more placeholder.
const nestedReplyPayload = `{
	"id": "c0",
	"body": "top",
	"author": "alice",
	"ups": 10,
	"score": 9,
	"replies": {
		"kind": "Listing",
		"data": {
			"children": [
				{
					"kind": "t1",
					"data": {
						"id": "c1",
						"body": "reply",
						"author": "bob",
						"replies": {
							"kind": "Listing",
							"data": {
								"children": [
									{"kind": "more", "data": {"id": "m1", "children": ["c2", "c3"]}}
								]
							}
						}
					}
				}
			]
		}
	}
}`

func TestParseComment_TreeShapeWithLoadMore(t *testing.T) {
	parser := NewParser()

	comment, err := parser.ParseComment(mustThing(t, "t1", nestedReplyPayload), 0)
	if err != nil {
		t.Fatalf("ParseComment failed: %v", err)
	}

	if comment.Depth != 0 {
		t.Errorf("expected depth 0, got %d", comment.Depth)
	}
	if len(comment.Replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(comment.Replies))
	}

	reply := comment.Replies[0]
	if reply.Depth != 1 {
		t.Errorf("expected depth 1, got %d", reply.Depth)
	}
	// The load-more placeholder must be omitted entirely, leaving the reply
	// with no children field rather than an empty list.
	if reply.Replies != nil {
		t.Errorf("expected nil replies after placeholder filtering, got %v", reply.Replies)
	}
}

func TestParseComment_EmptyStringReplies(t *testing.T) {
	parser := NewParser()

	comment, err := parser.ParseComment(mustThing(t, "t1", `{"id": "c0", "body": "hi", "author": "alice", "replies": ""}`), 0)
	if err != nil {
		t.Fatalf("ParseComment failed: %v", err)
	}
	if comment.Replies != nil {
		t.Errorf("expected nil replies, got %v", comment.Replies)
	}
}

func TestParseComment_DeletedAuthor(t *testing.T) {
	parser := NewParser()

	comment, err := parser.ParseComment(mustThing(t, "t1", `{"id": "c0", "body": "hi"}`), 0)
	if err != nil {
		t.Fatalf("ParseComment failed: %v", err)
	}
	if comment.Author != types.DeletedAuthor {
		t.Errorf("expected author %q, got %q", types.DeletedAuthor, comment.Author)
	}
}

func TestParseComment_SerializationPreservesAbsentReplies(t *testing.T) {
	parser := NewParser()

	comment, err := parser.ParseComment(mustThing(t, "t1", `{"id": "c0", "body": "hi", "author": "alice"}`), 0)
	if err != nil {
		t.Fatalf("ParseComment failed: %v", err)
	}

	encoded, err := json.Marshal(comment)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, present := roundTrip["replies"]; present {
		t.Error("replies key should be absent, not empty, when there are no children")
	}
}

func TestExtractPosts(t *testing.T) {
	parser := NewParser()

	listing := mustThing(t, "Listing", `{
		"after": "t3_next",
		"children": [
			{"kind": "t3", "data": {"id": "p1", "title": "one"}},
			{"kind": "t3", "data": {"id": "p2", "title": "two"}},
			{"kind": "t5", "data": {"id": "sub"}}
		]
	}`)

	posts, after, err := parser.ExtractPosts(listing)
	if err != nil {
		t.Fatalf("ExtractPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if after != "t3_next" {
		t.Errorf("expected after cursor t3_next, got %q", after)
	}
}

func TestExtractThread(t *testing.T) {
	parser := NewParser()

	things := []*types.Thing{
		mustThing(t, "Listing", `{
			"children": [
				{"kind": "t3", "data": {"id": "p1", "title": "the post", "num_comments": 3}}
			]
		}`),
		mustThing(t, "Listing", `{
			"children": [
				{"kind": "t1", "data": {"id": "c1", "body": "first", "author": "alice"}},
				{"kind": "t1", "data": {"id": "c2", "body": "second", "author": "bob"}},
				{"kind": "more", "data": {"id": "m1", "children": ["c9"]}}
			]
		}`),
	}

	thread, err := parser.ExtractThread(things)
	if err != nil {
		t.Fatalf("ExtractThread failed: %v", err)
	}

	if thread.Post == nil || thread.Post.ID != "p1" {
		t.Fatalf("expected post p1, got %+v", thread.Post)
	}
	if len(thread.Comments) != 2 {
		t.Fatalf("expected exactly 2 comments, got %d", len(thread.Comments))
	}
	for _, c := range thread.Comments {
		if c.Depth != 0 {
			t.Errorf("expected top-level depth 0, got %d for %s", c.Depth, c.ID)
		}
	}
}

func TestExtractThread_MissingListing(t *testing.T) {
	parser := NewParser()

	_, err := parser.ExtractThread([]*types.Thing{
		mustThing(t, "Listing", `{"children": []}`),
	})

	var parseErr *pkgerrs.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for missing listing, got %v", err)
	}
}

func TestExtractThread_NoPost(t *testing.T) {
	parser := NewParser()

	_, err := parser.ExtractThread([]*types.Thing{
		mustThing(t, "Listing", `{"children": []}`),
		mustThing(t, "Listing", `{"children": []}`),
	})

	var parseErr *pkgerrs.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError when the post is missing, got %v", err)
	}
}

func TestParseUser(t *testing.T) {
	parser := NewParser()

	user, err := parser.ParseUser(json.RawMessage(`{"kind": "t2", "data": {"name": "alice", "link_karma": 100, "comment_karma": 250, "created_utc": 1600000000, "total_karma": 350}}`))
	if err != nil {
		t.Fatalf("ParseUser failed: %v", err)
	}
	if user.Name != "alice" || user.LinkKarma != 100 || user.CommentKarma != 250 || user.TotalKarma != 350 {
		t.Errorf("unexpected user: %+v", user)
	}
}
