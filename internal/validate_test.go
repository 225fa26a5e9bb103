package internal

import (
	"testing"

	"github.com/lurknmore/lurk/pkg/types"
)

func TestValidateSubredditName(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "golang", false},
		{"valid with underscore", "ask_science", false},
		{"valid with digits", "programming2", false},
		{"empty", "", true},
		{"too long", "this_name_is_way_too_long_for_reddit", true},
		{"invalid character", "go-lang", true},
		{"spaces", "go lang", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubredditName(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateSubredditName(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "spez", false},
		{"valid with hyphen", "some-user", false},
		{"empty", "", true},
		{"too long", "this_username_is_too_long", true},
		{"invalid character", "user name", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	if err := ValidateLimit(100); err != nil {
		t.Errorf("limit 100 should be valid: %v", err)
	}
	if err := ValidateLimit(101); err == nil {
		t.Error("limit 101 should be rejected")
	}
	if err := ValidateLimit(-1); err == nil {
		t.Error("negative limit should be rejected")
	}
}

func TestValidateSearchRequest(t *testing.T) {
	if err := ValidateSearchRequest(nil); err == nil {
		t.Error("nil request should be rejected")
	}
	if err := ValidateSearchRequest(&types.SearchRequest{Query: ""}); err == nil {
		t.Error("empty query should be rejected")
	}
	if err := ValidateSearchRequest(&types.SearchRequest{Query: "go", Subreddit: "bad name"}); err == nil {
		t.Error("invalid subreddit should be rejected")
	}
	if err := ValidateSearchRequest(&types.SearchRequest{Query: "go", Subreddit: "golang", Limit: 25}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateThreadRequest(t *testing.T) {
	if err := ValidateThreadRequest(&types.ThreadRequest{Subreddit: "golang"}); err == nil {
		t.Error("missing post id should be rejected")
	}
	if err := ValidateThreadRequest(&types.ThreadRequest{PostID: "abc"}); err == nil {
		t.Error("missing subreddit should be rejected")
	}
	if err := ValidateThreadRequest(&types.ThreadRequest{Subreddit: "golang", PostID: "abc"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateProfileRequest(t *testing.T) {
	if err := ValidateProfileRequest(&types.ProfileRequest{}); err == nil {
		t.Error("missing username should be rejected")
	}
	if err := ValidateProfileRequest(&types.ProfileRequest{Username: "spez", Limit: 10}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}
