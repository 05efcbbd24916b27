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

	"github.com/mshore/blogforge/pkg/types"
)

// newsAPIBase is the NewsAPI.org everything endpoint. Declared as a var so
// tests can substitute an httptest server.
var newsAPIBase = "https://newsapi.org/v2/everything"

// newsAPICeiling bounds how many articles one run may request.
const newsAPICeiling = 5

// NewsAPIAdapter fetches recent articles from NewsAPI.org. The credential
// is optional for the pipeline as a whole: an unconfigured adapter is
// skipped by the aggregator with a warning.
type NewsAPIAdapter struct {
	Client        *http.Client
	UserAgent     string
	APIKey        string
	PreviewLength int
	Log           *zap.Logger
}

// NewNewsAPIAdapter builds the adapter from shared research settings.
func NewNewsAPIAdapter(cfg types.ResearchConfig, log *zap.Logger) *NewsAPIAdapter {
	return &NewsAPIAdapter{
		Client:        &http.Client{Timeout: cfg.Timeout},
		UserAgent:     cfg.UserAgent,
		APIKey:        cfg.NewsAPIKey,
		PreviewLength: cfg.PreviewLength,
		Log:           log,
	}
}

func (a *NewsAPIAdapter) Platform() types.SourcePlatform { return types.PlatformNewsAPI }

// Configured reports whether the NewsAPI credential is present.
func (a *NewsAPIAdapter) Configured() bool { return a.APIKey != "" }

// NewsAPI JSON structures.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	Name string `json:"name"`
}

// Fetch retrieves up to maxCount articles matching the query.
func (a *NewsAPIAdapter) Fetch(ctx context.Context, query string, maxCount int) []types.ResearchItem {
	count := clampCount(maxCount, newsAPICeiling)
	if count == 0 {
		return nil
	}
	if !a.Configured() {
		logSourceError(a.Log, &SourceError{Platform: a.Platform(), Kind: ErrAuthNotConfigured})
		return nil
	}

	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.Itoa(count)},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		logSourceError(a.Log, transportErr(a.Platform(), err))
		return nil
	}
	req.Header.Set("User-Agent", a.UserAgent)
	req.Header.Set("X-Api-Key", a.APIKey)

	resp, err := a.Client.Do(req)
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

	var nr newsAPIResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(body), err))
		return nil
	}
	if nr.Status != "ok" {
		logSourceError(a.Log, malformedErr(a.Platform(), nr.Message, nil))
		return nil
	}

	fetchedAt := time.Now().UTC()
	var items []types.ResearchItem
	for _, art := range nr.Articles {
		if len(items) >= count {
			break
		}
		title := strings.TrimSpace(art.Title)
		if title == "" {
			continue
		}
		published := fetchedAt
		if t, parseErr := time.Parse(time.RFC3339, art.PublishedAt); parseErr == nil {
			published = t
		}
		author := strings.TrimSpace(art.Author)
		if author == "" {
			author = strings.TrimSpace(art.Source.Name)
		}
		items = append(items, types.ResearchItem{
			Platform:    a.Platform(),
			Title:       title,
			Body:        preview(art.Description, a.PreviewLength),
			URL:         art.URL,
			Author:      author,
			PublishedAt: published,
		})
	}
	return items
}
