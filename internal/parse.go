package internal

import (
	"encoding/json"

	pkgerrs "github.com/lurknmore/lurk/pkg/errors"
	"github.com/lurknmore/lurk/pkg/types"
)

// Parser converts raw API payloads into normalized records. All methods are
// pure: no I/O, no shared state.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// rawPost is the wire shape of a submission's data object. Zero values are
// the documented defaults for missing fields.
type rawPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
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

// rawComment is the wire shape of a comment's data object. Replies is kept
// raw because the API sends either a nested Listing or the empty string.
type rawComment struct {
	ID         string          `json:"id"`
	Body       string          `json:"body"`
	Author     string          `json:"author"`
	CreatedUTC float64         `json:"created_utc"`
	Ups        int             `json:"ups"`
	Score      int             `json:"score"`
	Replies    json.RawMessage `json:"replies"`
}

// rawUser is the wire shape of an account's data object.
type rawUser struct {
	Name         string  `json:"name"`
	LinkKarma    int     `json:"link_karma"`
	CommentKarma int     `json:"comment_karma"`
	CreatedUTC   float64 `json:"created_utc"`
	TotalKarma   int     `json:"total_karma"`
}

// envelopeProbe detects whether a payload is a Thing wrapper rather than a
// bare data object.
type envelopeProbe struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// normalizePayload unwraps a Thing envelope to its data object. Different
// endpoints nest the same record differently, so both shapes are accepted
// here, once, instead of branching inside every mapper.
func normalizePayload(raw json.RawMessage) json.RawMessage {
	var probe envelopeProbe
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Kind != "" && len(probe.Data) > 0 {
		return probe.Data
	}
	return raw
}

// ParsePost maps a raw submission payload, wrapped or bare, to a normalized
// Post. Missing title/body default to empty, engagement counters to 0, the
// adult flag to false, and a missing author to the deleted sentinel.
func (p *Parser) ParsePost(raw json.RawMessage) (*types.Post, error) {
	data := normalizePayload(raw)

	var rp rawPost
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, &pkgerrs.ParseError{Message: "malformed post payload", Err: err}
	}

	author := rp.Author
	if author == "" {
		author = types.DeletedAuthor
	}

	return &types.Post{
		ID:          rp.ID,
		Title:       rp.Title,
		Body:        rp.SelfText,
		Author:      author,
		Subreddit:   rp.Subreddit,
		CreatedUTC:  rp.CreatedUTC,
		URL:         rp.URL,
		Permalink:   rp.Permalink,
		Ups:         rp.Ups,
		NumComments: rp.NumComments,
		Score:       rp.Score,
		Over18:      rp.Over18,
	}, nil
}

// ParseComment maps a comment Thing at the given depth, recursing into its
// replies at depth+1. Load-more placeholders ("more" kind) are filtered out
// rather than mapped. A node with no qualifying replies yields a Comment
// with a nil Replies field, not an empty slice.
func (p *Parser) ParseComment(thing *types.Thing, depth int) (*types.Comment, error) {
	if thing == nil {
		return nil, &pkgerrs.ParseError{Message: "comment thing is nil"}
	}
	if thing.Kind != types.KindComment {
		return nil, &pkgerrs.ParseError{Message: "expected t1 (Comment), got " + thing.Kind}
	}

	var rc rawComment
	if err := json.Unmarshal(thing.Data, &rc); err != nil {
		return nil, &pkgerrs.ParseError{Message: "malformed comment payload", Err: err}
	}

	author := rc.Author
	if author == "" {
		author = types.DeletedAuthor
	}

	comment := &types.Comment{
		ID:         rc.ID,
		Body:       rc.Body,
		Author:     author,
		CreatedUTC: rc.CreatedUTC,
		Ups:        rc.Ups,
		Score:      rc.Score,
		Depth:      depth,
	}

	// Reddit sends "" instead of a Listing when there are no replies.
	if len(rc.Replies) == 0 || string(rc.Replies) == `""` {
		return comment, nil
	}

	var repliesThing types.Thing
	if err := json.Unmarshal(rc.Replies, &repliesThing); err != nil || repliesThing.Kind != types.KindListing {
		return comment, nil
	}

	var listing types.ListingData
	if err := json.Unmarshal(repliesThing.Data, &listing); err != nil {
		return comment, nil
	}

	for _, child := range listing.Children {
		if child == nil || child.Kind != types.KindComment {
			continue
		}
		reply, err := p.ParseComment(child, depth+1)
		if err != nil {
			continue
		}
		comment.Replies = append(comment.Replies, reply)
	}

	return comment, nil
}

// ParseUser maps a raw account payload, wrapped or bare, to a normalized User.
func (p *Parser) ParseUser(raw json.RawMessage) (*types.User, error) {
	data := normalizePayload(raw)

	var ru rawUser
	if err := json.Unmarshal(data, &ru); err != nil {
		return nil, &pkgerrs.ParseError{Message: "malformed user payload", Err: err}
	}

	return &types.User{
		Name:         ru.Name,
		LinkKarma:    ru.LinkKarma,
		CommentKarma: ru.CommentKarma,
		CreatedUTC:   ru.CreatedUTC,
		TotalKarma:   ru.TotalKarma,
	}, nil
}

// ParseListing decodes a Listing envelope's data.
func (p *Parser) ParseListing(thing *types.Thing) (*types.ListingData, error) {
	if thing == nil {
		return nil, &pkgerrs.ParseError{Message: "listing thing is nil"}
	}
	if thing.Kind != types.KindListing {
		return nil, &pkgerrs.ParseError{Message: "expected Listing, got " + thing.Kind}
	}

	var listing types.ListingData
	if err := json.Unmarshal(thing.Data, &listing); err != nil {
		return nil, &pkgerrs.ParseError{Message: "malformed listing payload", Err: err}
	}
	return &listing, nil
}

// ExtractPosts maps every link child of a listing and surfaces the listing's
// continuation cursor for chained fetches.
func (p *Parser) ExtractPosts(thing *types.Thing) ([]*types.Post, string, error) {
	listing, err := p.ParseListing(thing)
	if err != nil {
		return nil, "", err
	}

	posts := make([]*types.Post, 0, len(listing.Children))
	for _, child := range listing.Children {
		if child == nil || child.Kind != types.KindLink {
			continue
		}
		post, err := p.ParsePost(child.Data)
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, listing.After, nil
}

// ExtractThread unwraps the thread endpoint's ordered pair of listings: the
// first must contain the post as its first child, the second holds the
// top-level comments. Non-comment children of the comment listing, such as
// load-more placeholders, are skipped.
func (p *Parser) ExtractThread(things []*types.Thing) (*types.Thread, error) {
	if len(things) < 2 {
		return nil, &pkgerrs.ParseError{Message: "thread response missing an expected listing"}
	}

	postListing, err := p.ParseListing(things[0])
	if err != nil {
		return nil, err
	}
	if len(postListing.Children) == 0 || postListing.Children[0] == nil {
		return nil, &pkgerrs.ParseError{Message: "thread response has no post"}
	}

	post, err := p.ParsePost(postListing.Children[0].Data)
	if err != nil {
		return nil, err
	}

	commentListing, err := p.ParseListing(things[1])
	if err != nil {
		return nil, err
	}

	var comments []*types.Comment
	for _, child := range commentListing.Children {
		if child == nil || child.Kind != types.KindComment {
			continue
		}
		comment, err := p.ParseComment(child, 0)
		if err != nil {
			continue
		}
		comments = append(comments, comment)
	}

	return &types.Thread{Post: post, Comments: comments}, nil
}
