// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// googleNewsBase is the Google News RSS search endpoint. Declared as a var
// so tests can substitute an httptest server.
var googleNewsBase = "https://news.google.com/rss/search"

// googleNewsCeiling bounds how many headlines one run may request.
const googleNewsCeiling = 5

// GoogleNewsAdapter fetches topical headlines from the Google News RSS
// search feed. No credential is required.
type GoogleNewsAdapter struct {
	Client        *http.Client
	UserAgent     string
	PreviewLength int
	Log           *zap.Logger

	strategies []feedStrategy
}

// NewGoogleNewsAdapter builds the adapter from shared research settings.
func NewGoogleNewsAdapter(cfg types.ResearchConfig, log *zap.Logger) *GoogleNewsAdapter {
	return &GoogleNewsAdapter{
		Client:        &http.Client{Timeout: cfg.Timeout},
		UserAgent:     cfg.UserAgent,
		PreviewLength: cfg.PreviewLength,
		Log:           log,
	}
}

func (a *GoogleNewsAdapter) Platform() types.SourcePlatform { return types.PlatformGoogleNews }

func (a *GoogleNewsAdapter) Configured() bool { return true }

// Fetch retrieves up to maxCount headlines matching the query.
func (a *GoogleNewsAdapter) Fetch(ctx context.Context, query string, maxCount int) []types.ResearchItem {
	count := clampCount(maxCount, googleNewsCeiling)
	if count == 0 {
		return nil
	}

	params := url.Values{
		"q":    {query},
		"hl":   {"en-US"},
		"gl":   {"US"},
		"ceid": {"US:en"},
	}

	body, serr := a.get(ctx, googleNewsBase+"?"+params.Encode())
	if serr != nil {
		logSourceError(a.Log, serr)
		return nil
	}

	strategies := a.strategies
	if strategies == nil {
		strategies = defaultFeedStrategies()
	}
	entries := parseFeed(body, strategies...)
	if len(entries) == 0 {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(body), nil))
		return nil
	}

	fetchedAt := time.Now().UTC()
	var items []types.ResearchItem
	for _, e := range entries {
		if len(items) >= count {
			break
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}
		published := e.Published
		if published.IsZero() {
			published = fetchedAt
		}
		items = append(items, types.ResearchItem{
			Platform:    a.Platform(),
			Title:       title,
			Body:        preview(stripHTML(e.Description), a.PreviewLength),
			URL:         e.Link,
			Author:      e.Author,
			PublishedAt: published,
		})
	}
	return items
}

func (a *GoogleNewsAdapter) get(ctx context.Context, rawURL string) ([]byte, *SourceError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, transportErr(a.Platform(), err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, transportErr(a.Platform(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(a.Platform(), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(a.Platform(), err)
	}
	return body, nil
}
