// Package lurk provides a read-only Reddit client for terminal use. It
// handles OAuth2 password-grant authentication, request pacing, response
// normalization, and a durable query cache.
//
// Basic usage:
//
//	client, err := lurk.NewClient(&lurk.Config{
//		ClientID:     "your-client-id",
//		ClientSecret: "your-client-secret",
//		Username:     "your-username",
//		Password:     "your-password",
//		UserAgent:    "cli:myapp:1.0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	posts, err := client.SubredditPosts(ctx, &types.PostsRequest{Subreddit: "golang", Sort: "hot"})
//	if err != nil {
//		log.Fatal(err)
//	}
package lurk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lurknmore/lurk/internal"
	"github.com/lurknmore/lurk/internal/cache"
	"github.com/lurknmore/lurk/pkg/types"
)

const (
	// DefaultBaseURL is the default Reddit API base URL.
	DefaultBaseURL = "https://oauth.reddit.com/"
	// DefaultAuthURL is the default Reddit OAuth base URL.
	DefaultAuthURL = "https://www.reddit.com/"
	// DefaultUserAgent is the default identifying client tag.
	DefaultUserAgent = "cli:lurk:1.0"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultCacheTTL is the freshness window applied to cache reads when
	// the config does not specify one.
	DefaultCacheTTL = 5 * time.Minute
)

// Config holds the configuration for the client. Credentials are checked
// lazily at token time, so a client built without them still serves
// cache-only and watchlist-only commands.
type Config struct {
	// ClientID, ClientSecret, Username and Password are the four secrets of
	// the password grant. All four are required for network operations.
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// UserAgent identifies the client to Reddit.
	// Should follow format: "platform:app-name:version".
	UserAgent string

	// BaseURL for the data API. Defaults to DefaultBaseURL.
	BaseURL string

	// AuthURL for OAuth token exchange. Defaults to DefaultAuthURL.
	AuthURL string

	// HTTPClient to use for requests. Defaults to a client with
	// DefaultTimeout.
	HTTPClient *http.Client

	// Cache is the durable query cache. Optional; when nil every operation
	// goes to the network.
	Cache *cache.Store

	// CacheTTL is the freshness window applied when reading the cache.
	// Supplied at read time, so quick mode can use a longer window against
	// the same stored entries. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration

	// PaceInterval is the minimum spacing between data requests.
	// Defaults to the published 100-requests-per-minute allowance.
	PaceInterval time.Duration

	// Logger for structured diagnostics. Optional.
	Logger *slog.Logger
}

// Client is the read-only Reddit API client. Each operation checks the
// cache first; on a miss it obtains a token, performs the HTTP call, paces
// itself, maps the response, and stores the result.
type Client struct {
	client *internal.Client
	parser *internal.Parser
	cache  *cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewClient creates a new client with the provided configuration. It does
// not authenticate; the first network operation does. The caller's Config
// is not modified; defaults are resolved into a private copy.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	cfg := *config
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	auth, err := internal.NewAuthenticator(
		cfg.HTTPClient,
		internal.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Username:     cfg.Username,
			Password:     cfg.Password,
		},
		cfg.UserAgent,
		cfg.AuthURL,
		"",
	)
	if err != nil {
		return nil, err
	}

	pacer := internal.NewPacer(cfg.PaceInterval)

	client, err := internal.NewClient(
		cfg.HTTPClient,
		auth,
		pacer,
		cfg.BaseURL,
		cfg.UserAgent,
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		parser: internal.NewParser(),
		cache:  cfg.Cache,
		ttl:    cfg.CacheTTL,
		logger: cfg.Logger,
	}, nil
}

// cacheKey builds a deterministic cache key from an operation name and its
// effective parameters. url.Values.Encode sorts keys and percent-escapes
// values, so free-text parameters can never forge another field's tag and
// two logically distinct queries never collide.
func cacheKey(op string, params url.Values) string {
	return op + "|" + params.Encode()
}

// Search runs a sitewide or per-subreddit search and returns a page of
// posts with the continuation cursor.
func (c *Client) Search(ctx context.Context, req *types.SearchRequest) (*types.PostsResponse, error) {
	if err := internal.ValidateSearchRequest(req); err != nil {
		return nil, err
	}

	key := cacheKey("search", url.Values{
		"q":     {req.Query},
		"sub":   {req.Subreddit},
		"sort":  {req.Sort},
		"t":     {req.Time},
		"limit": {strconv.Itoa(req.Limit)},
		"after": {req.After},
	})

	var cached types.PostsResponse
	if ok, err := c.cacheGet(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	path := "search"
	query := url.Values{}
	query.Set("q", req.Query)
	if req.Subreddit != "" {
		path = "r/" + req.Subreddit + "/search"
		query.Set("restrict_sr", "1")
	}
	if req.Sort != "" {
		query.Set("sort", req.Sort)
	}
	if req.Time != "" {
		query.Set("t", req.Time)
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.After != "" {
		query.Set("after", req.After)
	}

	thing, err := c.client.GetThing(ctx, path, query)
	if err != nil {
		return nil, err
	}

	posts, after, err := c.parser.ExtractPosts(thing)
	if err != nil {
		return nil, err
	}

	resp := &types.PostsResponse{Posts: posts, After: after}
	c.cacheSet(ctx, key, resp)
	return resp, nil
}

// SubredditPosts returns a page of a subreddit's listing for the given
// sort, with the continuation cursor.
func (c *Client) SubredditPosts(ctx context.Context, req *types.PostsRequest) (*types.PostsResponse, error) {
	if err := internal.ValidatePostsRequest(req); err != nil {
		return nil, err
	}

	sort := req.Sort
	if sort == "" {
		sort = "hot"
	}

	key := cacheKey("posts", url.Values{
		"sub":   {req.Subreddit},
		"sort":  {sort},
		"t":     {req.Time},
		"limit": {strconv.Itoa(req.Limit)},
		"after": {req.After},
	})

	var cached types.PostsResponse
	if ok, err := c.cacheGet(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	query := url.Values{}
	if req.Time != "" {
		query.Set("t", req.Time)
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.After != "" {
		query.Set("after", req.After)
	}

	thing, err := c.client.GetThing(ctx, "r/"+req.Subreddit+"/"+sort, query)
	if err != nil {
		return nil, err
	}

	posts, after, err := c.parser.ExtractPosts(thing)
	if err != nil {
		return nil, err
	}

	resp := &types.PostsResponse{Posts: posts, After: after}
	c.cacheSet(ctx, key, resp)
	return resp, nil
}

// Thread returns one post together with its comment forest. The forest is
// rebuilt fresh on every fetch; callers receive a value snapshot.
func (c *Client) Thread(ctx context.Context, req *types.ThreadRequest) (*types.Thread, error) {
	if err := internal.ValidateThreadRequest(req); err != nil {
		return nil, err
	}

	key := cacheKey("thread", url.Values{
		"sub":   {req.Subreddit},
		"post":  {req.PostID},
		"depth": {strconv.Itoa(req.Depth)},
		"limit": {strconv.Itoa(req.Limit)},
		"sort":  {req.Sort},
	})

	var cached types.Thread
	if ok, err := c.cacheGet(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	query := url.Values{}
	if req.Depth > 0 {
		query.Set("depth", strconv.Itoa(req.Depth))
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Sort != "" {
		query.Set("sort", req.Sort)
	}

	things, err := c.client.GetThings(ctx, "r/"+req.Subreddit+"/comments/"+req.PostID, query)
	if err != nil {
		return nil, err
	}

	thread, err := c.parser.ExtractThread(things)
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, key, thread)
	return thread, nil
}

// Profile returns a user's account summary and recent submissions. This is
// two sequential API calls: about, then submitted.
func (c *Client) Profile(ctx context.Context, req *types.ProfileRequest) (*types.Profile, error) {
	if err := internal.ValidateProfileRequest(req); err != nil {
		return nil, err
	}

	key := cacheKey("profile", url.Values{
		"user":  {req.Username},
		"limit": {strconv.Itoa(req.Limit)},
	})

	var cached types.Profile
	if ok, err := c.cacheGet(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	aboutThing, err := c.client.GetThing(ctx, "user/"+req.Username+"/about", nil)
	if err != nil {
		return nil, err
	}

	user, err := c.parser.ParseUser(aboutThing.Data)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}

	submittedThing, err := c.client.GetThing(ctx, "user/"+req.Username+"/submitted", query)
	if err != nil {
		return nil, err
	}

	posts, _, err := c.parser.ExtractPosts(submittedThing)
	if err != nil {
		return nil, err
	}

	profile := &types.Profile{User: user, Posts: posts}
	c.cacheSet(ctx, key, profile)
	return profile, nil
}

// CheckUsers fetches the profile of each username in turn. Targets are
// visited strictly sequentially so the pacer's spacing guarantee holds; a
// failed target is recorded in its CheckResult and the batch continues.
func (c *Client) CheckUsers(ctx context.Context, usernames []string, limit int) []types.CheckResult {
	results := make([]types.CheckResult, 0, len(usernames))
	for _, name := range usernames {
		profile, err := c.Profile(ctx, &types.ProfileRequest{Username: name, Limit: limit})
		if err != nil && c.logger != nil {
			c.logger.Warn("user check failed", "username", name, "error", err)
		}
		results = append(results, types.CheckResult{Username: name, Profile: profile, Err: err})
	}
	return results
}

// ClearCache removes every cached entry and reports how many were deleted.
// Clearing an absent or empty cache reports 0.
func (c *Client) ClearCache(ctx context.Context) (int64, error) {
	if c.cache == nil {
		return 0, nil
	}
	return c.cache.Clear(ctx)
}

// cacheGet looks up key and decodes the stored payload into v. A nil cache,
// a miss, or an expired entry all report ok=false.
func (c *Client) cacheGet(ctx context.Context, key string, v any) (bool, error) {
	if c.cache == nil {
		return false, nil
	}

	payload, ok, err := c.cache.Get(ctx, key, c.ttl)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		// A corrupt entry is treated as a miss; the fetch will overwrite it.
		if c.logger != nil {
			c.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		}
		return false, nil
	}

	if c.logger != nil {
		c.logger.Debug("cache hit", "key", key)
	}
	return true, nil
}

// cacheSet stores v under key. Cache write failures are logged, not
// surfaced: the fetched result is still valid for the caller.
func (c *Client) cacheSet(ctx context.Context, key string, v any) {
	if c.cache == nil {
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		}
		return
	}

	if err := c.cache.Set(ctx, key, payload); err != nil && c.logger != nil {
		c.logger.Warn("failed to write cache entry", "key", key, "error", err)
	}
}
