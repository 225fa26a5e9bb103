package internal

import (
	"fmt"

	pkgerrs "github.com/lurknmore/lurk/pkg/errors"
	"github.com/lurknmore/lurk/pkg/types"
)

const (
	maxSubredditLength = 21
	maxUsernameLength  = 20
	maxListingLimit    = 100
)

// ValidateSubredditName checks a subreddit name against Reddit's naming
// rules: letters, digits and underscores only.
func ValidateSubredditName(name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: "subreddit name cannot be empty"}
	}
	if len(name) > maxSubredditLength {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name cannot exceed %d characters", maxSubredditLength)}
	}
	for i, ch := range name {
		if !isWordChar(ch) {
			return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name contains invalid character %q at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateUsername checks a Reddit username: letters, digits, underscores
// and hyphens only.
func ValidateUsername(name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: "username", Message: "username cannot be empty"}
	}
	if len(name) > maxUsernameLength {
		return &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("username cannot exceed %d characters", maxUsernameLength)}
	}
	for i, ch := range name {
		if !isWordChar(ch) && ch != '-' {
			return &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("username contains invalid character %q at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateLimit checks a listing limit against the API maximum.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return &pkgerrs.ConfigError{Field: "limit", Message: "limit cannot be negative"}
	}
	if limit > maxListingLimit {
		return &pkgerrs.ConfigError{Field: "limit", Message: fmt.Sprintf("limit cannot exceed %d", maxListingLimit)}
	}
	return nil
}

// ValidateSearchRequest checks the required and bounded fields of a search.
func ValidateSearchRequest(req *types.SearchRequest) error {
	if req == nil {
		return &pkgerrs.ConfigError{Field: "request", Message: "search request cannot be nil"}
	}
	if req.Query == "" {
		return &pkgerrs.ConfigError{Field: "query", Message: "search query cannot be empty"}
	}
	if req.Subreddit != "" {
		if err := ValidateSubredditName(req.Subreddit); err != nil {
			return err
		}
	}
	return ValidateLimit(req.Limit)
}

// ValidatePostsRequest checks a subreddit listing request.
func ValidatePostsRequest(req *types.PostsRequest) error {
	if req == nil {
		return &pkgerrs.ConfigError{Field: "request", Message: "posts request cannot be nil"}
	}
	if err := ValidateSubredditName(req.Subreddit); err != nil {
		return err
	}
	return ValidateLimit(req.Limit)
}

// ValidateThreadRequest checks a thread request; both the subreddit and the
// post identifier are required.
func ValidateThreadRequest(req *types.ThreadRequest) error {
	if req == nil {
		return &pkgerrs.ConfigError{Field: "request", Message: "thread request cannot be nil"}
	}
	if err := ValidateSubredditName(req.Subreddit); err != nil {
		return err
	}
	if req.PostID == "" {
		return &pkgerrs.ConfigError{Field: "post_id", Message: "post id cannot be empty"}
	}
	return ValidateLimit(req.Limit)
}

// ValidateProfileRequest checks a profile request.
func ValidateProfileRequest(req *types.ProfileRequest) error {
	if req == nil {
		return &pkgerrs.ConfigError{Field: "request", Message: "profile request cannot be nil"}
	}
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	return ValidateLimit(req.Limit)
}

func isWordChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}
