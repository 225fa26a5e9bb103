// Package types defines the wire envelope and the normalized records
// produced by the lurk client.
package types

import "encoding/json"

// Kind tags used by the Reddit API to label Things.
const (
	KindListing = "Listing"
	KindComment = "t1"
	KindAccount = "t2"
	KindLink    = "t3"
	KindMore    = "more"
)

// DeletedAuthor is the sentinel used when a record carries no author,
// matching what Reddit shows for removed accounts.
const DeletedAuthor = "[deleted]"

// webBase is the prefix for canonical web URLs derived from permalinks.
const webBase = "https://www.reddit.com"

// Thing is Reddit's generic tagged-object envelope. Every API object is a
// Thing whose Kind selects how Data should be decoded.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// ListingData is the paginated collection shape shared by all listing
// endpoints: a children array plus continuation cursors.
type ListingData struct {
	After    string   `json:"after"`
	Before   string   `json:"before"`
	Children []*Thing `json:"children"`
}

// Post is a normalized submission. Immutable once constructed; all optional
// upstream fields are defaulted at mapping time.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	Score       int     `json:"score"`
	Over18      bool    `json:"over_18"`
}

// WebURL returns the canonical web address for the post, always derived from
// the permalink rather than trusted from upstream.
func (p *Post) WebURL() string {
	return webBase + p.Permalink
}

// Comment is a normalized comment node. Depth is 0 for top-level comments
// and increments by exactly 1 per nesting level. Replies is nil, not empty,
// when the node has no children; renderers must treat the two the same while
// serialization preserves the distinction.
type Comment struct {
	ID         string     `json:"id"`
	Body       string     `json:"body"`
	Author     string     `json:"author"`
	CreatedUTC float64    `json:"created_utc"`
	Ups        int        `json:"ups"`
	Score      int        `json:"score"`
	Depth      int        `json:"depth"`
	Replies    []*Comment `json:"replies,omitempty"`
}

// User is a normalized account summary.
type User struct {
	Name         string  `json:"name"`
	LinkKarma    int     `json:"link_karma"`
	CommentKarma int     `json:"comment_karma"`
	CreatedUTC   float64 `json:"created_utc"`
	TotalKarma   int     `json:"total_karma"`
}

// SearchRequest describes a search query. Query is required; Subreddit
// restricts the search to one subreddit when set.
type SearchRequest struct {
	Query     string
	Subreddit string

	// Sort is one of "relevance", "hot", "top", "new", "comments".
	Sort string

	// Time windows "top" sorts: "hour", "day", "week", "month", "year", "all".
	Time string

	// Limit caps the number of results. Reddit enforces a maximum of 100.
	Limit int

	// After is the fullname cursor from a previous page.
	After string
}

// PostsRequest describes a subreddit listing request.
type PostsRequest struct {
	Subreddit string

	// Sort is one of "hot", "new", "top", "rising".
	Sort string

	Time  string
	Limit int
	After string
}

// ThreadRequest describes a request for one post and its comment tree.
// Subreddit and PostID are both required.
type ThreadRequest struct {
	Subreddit string
	PostID    string

	// Depth bounds how deep the server materializes the reply tree.
	Depth int

	Limit int
	Sort  string
}

// ProfileRequest describes a request for a user's account summary and
// recent submissions.
type ProfileRequest struct {
	Username string
	Limit    int
}

// PostsResponse bundles a page of posts with the cursor for the next page.
// After is empty on the final page.
type PostsResponse struct {
	Posts []*Post
	After string
}

// Thread bundles exactly one post with its comment forest. Top-level
// comments are the roots. The forest is a fresh value snapshot per fetch.
type Thread struct {
	Post     *Post
	Comments []*Comment
}

// Profile bundles a user summary with their recent submissions.
type Profile struct {
	User  *User
	Posts []*Post
}

// CheckResult reports the outcome for a single target of a batch user
// check. Err is non-nil when that target failed; other targets proceed.
type CheckResult struct {
	Username string
	Profile  *Profile
	Err      error
}
