// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/internal/httputil"
	"github.com/mshore/blogforge/pkg/types"
)

// redditSearchBase is the Reddit public search endpoint. Declared as a var
// so tests can substitute an httptest server.
var redditSearchBase = "https://www.reddit.com/search.json"

// redditCeiling bounds how many posts one run may request.
const redditCeiling = 25

// RedditAdapter fetches discussion posts from the Reddit public search API.
// No credential is required, but Reddit rate-limits generic user agents, so
// requests go through the shared 429 retry helper with a descriptive agent.
type RedditAdapter struct {
	Client        *http.Client
	UserAgent     string
	PreviewLength int
	Log           *zap.Logger
}

// NewRedditAdapter builds the adapter from shared research settings.
func NewRedditAdapter(cfg types.ResearchConfig, log *zap.Logger) *RedditAdapter {
	agent := cfg.RedditUserAgent
	if agent == "" {
		agent = cfg.UserAgent
	}
	return &RedditAdapter{
		Client:        &http.Client{Timeout: cfg.Timeout},
		UserAgent:     agent,
		PreviewLength: cfg.PreviewLength,
		Log:           log,
	}
}

func (a *RedditAdapter) Platform() types.SourcePlatform { return types.PlatformReddit }

func (a *RedditAdapter) Configured() bool { return true }

// Reddit listing JSON structures.
type redditListing struct {
	Data redditListingData `json:"data"`
}

type redditListingData struct {
	Children []redditChild `json:"children"`
}

type redditChild struct {
	Data redditPost `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Ups         int64   `json:"ups"`
	NumComments int64   `json:"num_comments"`
}

// Fetch retrieves up to maxCount posts matching the query.
func (a *RedditAdapter) Fetch(ctx context.Context, query string, maxCount int) []types.ResearchItem {
	count := clampCount(maxCount, redditCeiling)
	if count == 0 {
		return nil
	}

	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(count)},
		"sort":  {"relevance"},
		"t":     {"month"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, redditSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		logSourceError(a.Log, transportErr(a.Platform(), err))
		return nil
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		logSourceError(a.Log, transportErr(a.Platform(), err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logSourceError(a.Log, statusErr(a.Platform(), resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logSourceError(a.Log, transportErr(a.Platform(), err))
		return nil
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(body), err))
		return nil
	}

	fetchedAt := time.Now().UTC()
	var items []types.ResearchItem
	for _, child := range listing.Data.Children {
		if len(items) >= count {
			break
		}
		post := child.Data
		title := strings.TrimSpace(post.Title)
		if title == "" {
			continue
		}
		published := fetchedAt
		if post.CreatedUTC > 0 {
			published = time.Unix(int64(post.CreatedUTC), 0).UTC()
		}
		items = append(items, types.ResearchItem{
			Platform:    a.Platform(),
			Title:       title,
			Body:        preview(post.SelfText, a.PreviewLength),
			URL:         "https://www.reddit.com" + post.Permalink,
			Author:      post.Author,
			PublishedAt: published,
			Engagement: types.Engagement{
				Upvotes:  post.Ups,
				Comments: post.NumComments,
			},
		})
	}
	return items
}
