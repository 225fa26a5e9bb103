// Command lurk is a terminal Reddit reader: search, subreddit listings,
// comment threads, user profiles, and a watchlist, with a durable query
// cache between invocations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	lurk "github.com/lurknmore/lurk"
	"github.com/lurknmore/lurk/internal/cache"
	"github.com/lurknmore/lurk/internal/config"
	"github.com/lurknmore/lurk/internal/render"
	"github.com/lurknmore/lurk/internal/watchlist"
	"github.com/lurknmore/lurk/pkg/types"
)

const usage = `usage: lurk <command> [flags]

commands:
  search <query>        search posts sitewide or in one subreddit
  sub <name>            show a subreddit listing
  thread <sub> <id>     show a post with its comment tree
  user <name>           show a user profile
  watch add <name>      add a user to the watchlist
  watch rm <name>       remove a user from the watchlist
  watch list            print the watchlist
  watch check           check every watched user
  cache clear           remove all cached entries
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *slog.Logger
	if os.Getenv("LURK_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx := context.Background()
	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args []string) error {
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ttl := cfg.Cache.TTL
	if os.Getenv("LURK_QUICK") != "" {
		// Quick mode: same stored entries, longer freshness window.
		ttl = cfg.Cache.QuickTTL
	}

	client, err := lurk.NewClient(&lurk.Config{
		ClientID:     cfg.Credentials.ClientID,
		ClientSecret: cfg.Credentials.ClientSecret,
		Username:     cfg.Credentials.Username,
		Password:     cfg.Credentials.Password,
		UserAgent:    cfg.API.UserAgent,
		BaseURL:      cfg.API.BaseURL,
		AuthURL:      cfg.API.AuthURL,
		Cache:        store,
		CacheTTL:     ttl,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	switch command {
	case "search":
		return runSearch(ctx, client, args)
	case "sub":
		return runSub(ctx, client, args)
	case "thread":
		return runThread(ctx, client, args)
	case "user":
		return runUser(ctx, client, args)
	case "watch":
		return runWatch(ctx, client, cfg, args)
	case "cache":
		return runCache(ctx, client, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runSearch(ctx context.Context, client *lurk.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	subreddit := fs.String("r", "", "restrict search to a subreddit")
	sortKey := fs.String("sort", "relevance", "sort order")
	window := fs.String("t", "", "time window for top sorts")
	limit := fs.Int("limit", 25, "number of results")
	after := fs.String("after", "", "continuation cursor")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("search requires a query")
	}

	resp, err := client.Search(ctx, &types.SearchRequest{
		Query:     fs.Arg(0),
		Subreddit: *subreddit,
		Sort:      *sortKey,
		Time:      *window,
		Limit:     *limit,
		After:     *after,
	})
	if err != nil {
		return err
	}

	render.Posts(os.Stdout, resp.Posts)
	if resp.After != "" {
		fmt.Printf("\nnext page: -after %s\n", resp.After)
	}
	return nil
}

func runSub(ctx context.Context, client *lurk.Client, args []string) error {
	fs := flag.NewFlagSet("sub", flag.ExitOnError)
	sortKey := fs.String("sort", "hot", "listing sort")
	window := fs.String("t", "", "time window for top sorts")
	limit := fs.Int("limit", 25, "number of results")
	after := fs.String("after", "", "continuation cursor")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("sub requires a subreddit name")
	}

	resp, err := client.SubredditPosts(ctx, &types.PostsRequest{
		Subreddit: fs.Arg(0),
		Sort:      *sortKey,
		Time:      *window,
		Limit:     *limit,
		After:     *after,
	})
	if err != nil {
		return err
	}

	render.Posts(os.Stdout, resp.Posts)
	if resp.After != "" {
		fmt.Printf("\nnext page: -after %s\n", resp.After)
	}
	return nil
}

func runThread(ctx context.Context, client *lurk.Client, args []string) error {
	fs := flag.NewFlagSet("thread", flag.ExitOnError)
	depth := fs.Int("depth", 0, "maximum reply depth")
	limit := fs.Int("limit", 0, "maximum comments")
	sortKey := fs.String("sort", "", "comment sort")
	draft := fs.String("save", "", "save a markdown draft to this path")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("thread requires a subreddit and a post id")
	}

	thread, err := client.Thread(ctx, &types.ThreadRequest{
		Subreddit: fs.Arg(0),
		PostID:    fs.Arg(1),
		Depth:     *depth,
		Limit:     *limit,
		Sort:      *sortKey,
	})
	if err != nil {
		return err
	}

	if *draft != "" {
		if err := render.SaveDraft(*draft, thread); err != nil {
			return err
		}
		fmt.Printf("saved draft to %s\n", *draft)
		return nil
	}

	render.Thread(os.Stdout, thread)
	return nil
}

func runUser(ctx context.Context, client *lurk.Client, args []string) error {
	fs := flag.NewFlagSet("user", flag.ExitOnError)
	limit := fs.Int("limit", 10, "number of recent submissions")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("user requires a username")
	}

	profile, err := client.Profile(ctx, &types.ProfileRequest{Username: fs.Arg(0), Limit: *limit})
	if err != nil {
		return err
	}

	render.Profile(os.Stdout, profile)
	return nil
}

func runWatch(ctx context.Context, client *lurk.Client, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("watch requires a subcommand: add, rm, list, check")
	}

	wl, err := watchlist.Open(cfg.Watchlist.Path)
	if err != nil {
		return err
	}
	defer wl.Close()

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("watch add requires a username")
		}
		if err := wl.Add(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("watching u/%s\n", args[1])
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("watch rm requires a username")
		}
		removed, err := wl.Remove(ctx, args[1])
		if err != nil {
			return err
		}
		if removed {
			fmt.Printf("stopped watching u/%s\n", args[1])
		} else {
			fmt.Printf("u/%s was not watched\n", args[1])
		}
		return nil
	case "list":
		users, err := wl.List(ctx)
		if err != nil {
			return err
		}
		for _, name := range users {
			fmt.Printf("u/%s\n", name)
		}
		return nil
	case "check":
		users, err := wl.List(ctx)
		if err != nil {
			return err
		}
		for _, result := range client.CheckUsers(ctx, users, 5) {
			if result.Err != nil {
				fmt.Printf("u/%s: check failed: %v\n", result.Username, result.Err)
				continue
			}
			render.Profile(os.Stdout, result.Profile)
			fmt.Println()
		}
		return nil
	default:
		return fmt.Errorf("unknown watch subcommand %q", args[0])
	}
}

func runCache(ctx context.Context, client *lurk.Client, args []string) error {
	if len(args) < 1 || args[0] != "clear" {
		return fmt.Errorf("cache requires the clear subcommand")
	}

	count, err := client.ClearCache(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("removed %d cached entries\n", count)
	return nil
}
