// Package render formats normalized records for terminal or file
// consumption.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lurknmore/lurk/pkg/types"
)

// indentUnit is the per-depth indentation for comment trees.
const indentUnit = "  "

// Age formats the time elapsed since a created_utc timestamp.
func Age(createdUTC float64) string {
	created := time.Unix(int64(createdUTC), 0)
	d := time.Since(created)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// PostLine writes a one-line summary of a post, suitable for listings.
func PostLine(w io.Writer, i int, post *types.Post) {
	nsfw := ""
	if post.Over18 {
		nsfw = " [NSFW]"
	}
	fmt.Fprintf(w, "%2d. %s%s\n    r/%s | u/%s | %d points | %d comments | %s\n",
		i+1, post.Title, nsfw, post.Subreddit, post.Author, post.Score, post.NumComments, Age(post.CreatedUTC))
}

// Posts writes a numbered listing of posts.
func Posts(w io.Writer, posts []*types.Post) {
	for i, post := range posts {
		PostLine(w, i, post)
	}
}

// Thread writes a post followed by its indented comment tree.
func Thread(w io.Writer, thread *types.Thread) {
	post := thread.Post
	fmt.Fprintf(w, "%s\n", post.Title)
	fmt.Fprintf(w, "r/%s | u/%s | %d points | %s\n", post.Subreddit, post.Author, post.Score, Age(post.CreatedUTC))
	fmt.Fprintf(w, "%s\n", post.WebURL())
	if post.Body != "" {
		fmt.Fprintf(w, "\n%s\n", post.Body)
	}
	fmt.Fprintf(w, "\n%d comments:\n", thread.Post.NumComments)
	comments(w, thread.Comments)
}

func comments(w io.Writer, cs []*types.Comment) {
	for _, c := range cs {
		indent := strings.Repeat(indentUnit, c.Depth)
		fmt.Fprintf(w, "%su/%s (%d points, %s):\n", indent, c.Author, c.Score, Age(c.CreatedUTC))
		for _, line := range strings.Split(c.Body, "\n") {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
		// nil and empty reply slices render identically
		if len(c.Replies) > 0 {
			comments(w, c.Replies)
		}
	}
}

// Profile writes a user summary and their recent submissions.
func Profile(w io.Writer, profile *types.Profile) {
	u := profile.User
	fmt.Fprintf(w, "u/%s\n", u.Name)
	fmt.Fprintf(w, "link karma: %d | comment karma: %d | total: %d | joined %s\n",
		u.LinkKarma, u.CommentKarma, u.TotalKarma, Age(u.CreatedUTC))
	if len(profile.Posts) > 0 {
		fmt.Fprintf(w, "\nrecent submissions:\n")
		Posts(w, profile.Posts)
	}
}

// Markdown renders a thread as a markdown document.
func Markdown(thread *types.Thread) string {
	var sb strings.Builder
	post := thread.Post

	fmt.Fprintf(&sb, "# %s\n\n", post.Title)
	fmt.Fprintf(&sb, "*r/%s | u/%s | %d points | %d comments*\n\n", post.Subreddit, post.Author, post.Score, post.NumComments)
	fmt.Fprintf(&sb, "[permalink](%s)\n\n", post.WebURL())
	if post.Body != "" {
		fmt.Fprintf(&sb, "%s\n\n", post.Body)
	}

	sb.WriteString("## Comments\n\n")
	markdownComments(&sb, thread.Comments)
	return sb.String()
}

func markdownComments(sb *strings.Builder, cs []*types.Comment) {
	for _, c := range cs {
		quote := strings.Repeat(">", c.Depth+1) + " "
		fmt.Fprintf(sb, "%s**u/%s** (%d points):\n", quote, c.Author, c.Score)
		for _, line := range strings.Split(c.Body, "\n") {
			fmt.Fprintf(sb, "%s%s\n", quote, line)
		}
		sb.WriteString("\n")
		if len(c.Replies) > 0 {
			markdownComments(sb, c.Replies)
		}
	}
}

// SaveDraft writes a thread's markdown rendering to path.
func SaveDraft(path string, thread *types.Thread) error {
	if err := os.WriteFile(path, []byte(Markdown(thread)), 0o644); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
