package internal

import (
	"github.com/lurknmore/lurk/pkg/types"
)

// CommentTree provides utility methods for working with a normalized
// comment forest.
type CommentTree struct {
	Comments []*types.Comment
}

// NewCommentTree creates a new CommentTree from a slice of top-level comments.
func NewCommentTree(comments []*types.Comment) *CommentTree {
	return &CommentTree{Comments: comments}
}

// Flatten returns all comments in the forest as a flat slice, parents before
// their replies, preserving server-reported sibling order.
func (ct *CommentTree) Flatten() []*types.Comment {
	var result []*types.Comment
	ct.flattenRecursive(ct.Comments, &result)
	return result
}

func (ct *CommentTree) flattenRecursive(comments []*types.Comment, result *[]*types.Comment) {
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		*result = append(*result, comment)
		if len(comment.Replies) > 0 {
			ct.flattenRecursive(comment.Replies, result)
		}
	}
}

// Walk visits every comment in the forest, parents before replies.
func (ct *CommentTree) Walk(fn func(*types.Comment)) {
	for _, comment := range ct.Flatten() {
		fn(comment)
	}
}

// Find returns the first comment that matches the given condition, or nil.
func (ct *CommentTree) Find(condition func(*types.Comment) bool) *types.Comment {
	return ct.findRecursive(ct.Comments, condition)
}

func (ct *CommentTree) findRecursive(comments []*types.Comment, condition func(*types.Comment) bool) *types.Comment {
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		if condition(comment) {
			return comment
		}
		if len(comment.Replies) > 0 {
			if found := ct.findRecursive(comment.Replies, condition); found != nil {
				return found
			}
		}
	}
	return nil
}

// GetByID returns the comment with the given ID, or nil if absent.
func (ct *CommentTree) GetByID(id string) *types.Comment {
	return ct.Find(func(c *types.Comment) bool { return c.ID == id })
}

// Count returns the total number of comments in the forest.
func (ct *CommentTree) Count() int {
	return len(ct.Flatten())
}

// MaxDepth returns the deepest nesting level present, or -1 for an empty
// forest. Top-level comments are depth 0.
func (ct *CommentTree) MaxDepth() int {
	max := -1
	ct.Walk(func(c *types.Comment) {
		if c.Depth > max {
			max = c.Depth
		}
	})
	return max
}
