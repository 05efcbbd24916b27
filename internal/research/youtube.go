// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// YouTube Data API v3 endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	youtubeSearchBase = "https://www.googleapis.com/youtube/v3/search"
	youtubeVideosBase = "https://www.googleapis.com/youtube/v3/videos"
)

// youtubeCeiling bounds how many videos one run may request.
const youtubeCeiling = 10

// YouTubeAdapter fetches topical videos through the YouTube Data API.
// Fetching is two calls: a search call returning video IDs and snippets,
// then a batch statistics call. The statistics call is best-effort; when it
// fails, videos still surface with zero view and comment counts.
type YouTubeAdapter struct {
	Client        *http.Client
	UserAgent     string
	APIKey        string
	PreviewLength int
	Log           *zap.Logger
}

// NewYouTubeAdapter builds the adapter from shared research settings.
func NewYouTubeAdapter(cfg types.ResearchConfig, log *zap.Logger) *YouTubeAdapter {
	return &YouTubeAdapter{
		Client:        &http.Client{Timeout: cfg.Timeout},
		UserAgent:     cfg.UserAgent,
		APIKey:        cfg.YouTubeAPIKey,
		PreviewLength: cfg.PreviewLength,
		Log:           log,
	}
}

func (a *YouTubeAdapter) Platform() types.SourcePlatform { return types.PlatformYouTube }

// Configured reports whether the YouTube Data API credential is present.
func (a *YouTubeAdapter) Configured() bool { return a.APIKey != "" }

// YouTube Data API JSON structures.
type youtubeSearchResponse struct {
	Items []youtubeSearchItem `json:"items"`
}

type youtubeSearchItem struct {
	ID      youtubeVideoID `json:"id"`
	Snippet youtubeSnippet `json:"snippet"`
}

type youtubeVideoID struct {
	VideoID string `json:"videoId"`
}

type youtubeSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

type youtubeVideosResponse struct {
	Items []youtubeVideoItem `json:"items"`
}

type youtubeVideoItem struct {
	ID         string            `json:"id"`
	Statistics youtubeStatistics `json:"statistics"`
}

// Statistics counts arrive as decimal strings.
type youtubeStatistics struct {
	ViewCount    string `json:"viewCount"`
	CommentCount string `json:"commentCount"`
}

// Fetch retrieves up to maxCount videos matching the query.
func (a *YouTubeAdapter) Fetch(ctx context.Context, query string, maxCount int) []types.ResearchItem {
	count := clampCount(maxCount, youtubeCeiling)
	if count == 0 {
		return nil
	}
	if !a.Configured() {
		logSourceError(a.Log, &SourceError{Platform: a.Platform(), Kind: ErrAuthNotConfigured})
		return nil
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"order":      {"relevance"},
		"maxResults": {strconv.Itoa(count)},
		"key":        {a.APIKey},
	}

	body, serr := a.get(ctx, youtubeSearchBase+"?"+params.Encode())
	if serr != nil {
		logSourceError(a.Log, serr)
		return nil
	}

	var sr youtubeSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(body), err))
		return nil
	}

	fetchedAt := time.Now().UTC()
	var items []types.ResearchItem
	var videoIDs []string
	for _, entry := range sr.Items {
		if len(items) >= count {
			break
		}
		title := strings.TrimSpace(html.UnescapeString(entry.Snippet.Title))
		if title == "" || entry.ID.VideoID == "" {
			continue
		}
		published := fetchedAt
		if t, parseErr := time.Parse(time.RFC3339, entry.Snippet.PublishedAt); parseErr == nil {
			published = t
		}
		videoIDs = append(videoIDs, entry.ID.VideoID)
		items = append(items, types.ResearchItem{
			Platform:    a.Platform(),
			Title:       title,
			Body:        preview(entry.Snippet.Description, a.PreviewLength),
			URL:         "https://www.youtube.com/watch?v=" + entry.ID.VideoID,
			Author:      strings.TrimSpace(entry.Snippet.ChannelTitle),
			PublishedAt: published,
		})
	}
	if len(items) == 0 {
		return nil
	}

	// Best-effort enrichment: a failed statistics call leaves the items
	// with zero counts rather than dropping them.
	stats := a.fetchStatistics(ctx, videoIDs)
	for i, id := range videoIDs {
		if s, ok := stats[id]; ok {
			items[i].Engagement = s
		}
	}
	return items
}

// fetchStatistics performs the batch statistics call for the given IDs.
// Failures are logged and produce an empty map.
func (a *YouTubeAdapter) fetchStatistics(ctx context.Context, videoIDs []string) map[string]types.Engagement {
	if len(videoIDs) == 0 {
		return nil
	}

	params := url.Values{
		"part": {"statistics"},
		"id":   {strings.Join(videoIDs, ",")},
		"key":  {a.APIKey},
	}

	body, serr := a.get(ctx, youtubeVideosBase+"?"+params.Encode())
	if serr != nil {
		logSourceError(a.Log, serr)
		return nil
	}

	var vr youtubeVideosResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(body), err))
		return nil
	}

	stats := make(map[string]types.Engagement, len(vr.Items))
	for _, v := range vr.Items {
		views, _ := strconv.ParseInt(v.Statistics.ViewCount, 10, 64)
		comments, _ := strconv.ParseInt(v.Statistics.CommentCount, 10, 64)
		stats[v.ID] = types.Engagement{Views: views, Comments: comments}
	}
	return stats
}

func (a *YouTubeAdapter) get(ctx context.Context, rawURL string) ([]byte, *SourceError) {
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
