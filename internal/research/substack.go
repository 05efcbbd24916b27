// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// substackDiscoverURL is the Substack discover page. Declared as a var so
// tests can substitute an httptest server.
var substackDiscoverURL = "https://substack.com/discover"

// substackCeiling bounds how many newsletters one run may request.
const substackCeiling = 10

// substackPreloadMarker locates the embedded JSON payload inside the
// discover page's script tags.
const substackPreloadMarker = "window._preloads"

// substackPublicationsPath is the key path to the publication list inside
// the preloads payload. Known but not guaranteed to stay present.
const substackPublicationsPath = "explore.publications"

// fallbackNewsletters is served when the discover page no longer carries a
// parseable publication list. A degraded-but-usable set of well-known
// newsletters keeps the pipeline supplied with context; this fallback is
// intentional and distinct from an empty failure result.
var fallbackNewsletters = []types.ResearchItem{
	{Platform: types.PlatformSubstack, Title: "The Pragmatic Engineer", Body: "Big Tech and startups, from the inside.", URL: "https://newsletter.pragmaticengineer.com", Author: "Gergely Orosz"},
	{Platform: types.PlatformSubstack, Title: "Lenny's Newsletter", Body: "Product, growth, and career advice.", URL: "https://www.lennysnewsletter.com", Author: "Lenny Rachitsky"},
	{Platform: types.PlatformSubstack, Title: "Platformer", Body: "News at the intersection of tech and democracy.", URL: "https://www.platformer.news", Author: "Casey Newton"},
	{Platform: types.PlatformSubstack, Title: "Stratechery", Body: "Analysis of the strategy and business side of technology.", URL: "https://stratechery.com", Author: "Ben Thompson"},
	{Platform: types.PlatformSubstack, Title: "Not Boring", Body: "Business strategy and tech optimism.", URL: "https://www.notboring.co", Author: "Packy McCormick"},
}

// SubstackAdapter fetches trending newsletters from the Substack discover
// page, whose data ships as JSON embedded in a script tag. No credential is
// required.
type SubstackAdapter struct {
	Client        *http.Client
	UserAgent     string
	PreviewLength int
	Log           *zap.Logger
}

// NewSubstackAdapter builds the adapter from shared research settings.
func NewSubstackAdapter(cfg types.ResearchConfig, log *zap.Logger) *SubstackAdapter {
	return &SubstackAdapter{
		Client:        &http.Client{Timeout: cfg.Timeout},
		UserAgent:     cfg.UserAgent,
		PreviewLength: cfg.PreviewLength,
		Log:           log,
	}
}

func (a *SubstackAdapter) Platform() types.SourcePlatform { return types.PlatformSubstack }

func (a *SubstackAdapter) Configured() bool { return true }

// Fetch retrieves up to maxCount trending newsletters. The query is unused:
// discover is a listing source, not a search source.
func (a *SubstackAdapter) Fetch(ctx context.Context, _ string, maxCount int) []types.ResearchItem {
	count := clampCount(maxCount, substackCeiling)
	if count == 0 {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, substackDiscoverURL, nil)
	if err != nil {
		logSourceError(a.Log, transportErr(a.Platform(), err))
		return nil
	}
	req.Header.Set("User-Agent", a.UserAgent)

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

	// Transport failures return empty like every adapter; only a page we
	// received but could not navigate falls back to the well-known list.
	items := a.parseDiscoverPage(body, count)
	if len(items) == 0 {
		return a.fallback(count)
	}
	return items
}

// parseDiscoverPage locates the preloads payload in the page's script tags
// and extracts the publication list.
func (a *SubstackAdapter) parseDiscoverPage(page []byte, count int) []types.ResearchItem {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		logSourceError(a.Log, malformedErr(a.Platform(), bodySnippet(page), err))
		return nil
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, substackPreloadMarker) {
			return true
		}
		payload = extractPreloadJSON(text)
		return payload == ""
	})
	if payload == "" {
		logSourceError(a.Log, malformedErr(a.Platform(), substackPreloadMarker+" not found", nil))
		return nil
	}

	publications := gjson.Get(payload, substackPublicationsPath)
	if !publications.Exists() || !publications.IsArray() {
		a.Log.Warn("substack publication path missing, using fallback list",
			zap.String("path", substackPublicationsPath))
		return nil
	}

	fetchedAt := time.Now().UTC()
	var items []types.ResearchItem
	publications.ForEach(func(_, pub gjson.Result) bool {
		if len(items) >= count {
			return false
		}
		title := strings.TrimSpace(pub.Get("name").String())
		if title == "" {
			return true
		}
		published := fetchedAt
		if t, parseErr := time.Parse(time.RFC3339, pub.Get("created_at").String()); parseErr == nil {
			published = t
		}
		items = append(items, types.ResearchItem{
			Platform:    a.Platform(),
			Title:       title,
			Body:        preview(stripHTML(pub.Get("hero_text").String()), a.PreviewLength),
			URL:         strings.TrimSpace(pub.Get("base_url").String()),
			Author:      strings.TrimSpace(pub.Get("author_name").String()),
			PublishedAt: published,
		})
		return true
	})
	return items
}

// extractPreloadJSON pulls the JSON document out of a script body of the
// form `window._preloads = JSON.parse("...")` or `window._preloads = {...}`.
func extractPreloadJSON(script string) string {
	idx := strings.Index(script, substackPreloadMarker)
	if idx < 0 {
		return ""
	}
	rest := script[idx+len(substackPreloadMarker):]
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return ""
	}
	rest = strings.TrimSpace(rest[eq+1:])

	if strings.HasPrefix(rest, "JSON.parse(") {
		rest = rest[len("JSON.parse("):]
		end := strings.LastIndex(rest, ")")
		if end < 0 {
			return ""
		}
		// The argument is a JSON string literal holding the document.
		var decoded string
		if err := json.Unmarshal([]byte(strings.TrimSpace(rest[:end])), &decoded); err != nil {
			return ""
		}
		return decoded
	}

	rest = strings.TrimSuffix(strings.TrimSpace(rest), ";")
	if gjson.Valid(rest) {
		return rest
	}
	return ""
}

// fallback returns up to count entries from the well-known newsletter list,
// stamped with the current time.
func (a *SubstackAdapter) fallback(count int) []types.ResearchItem {
	fetchedAt := time.Now().UTC()
	n := count
	if n > len(fallbackNewsletters) {
		n = len(fallbackNewsletters)
	}
	items := make([]types.ResearchItem, n)
	copy(items, fallbackNewsletters[:n])
	for i := range items {
		items[i].PublishedAt = fetchedAt
	}
	return items
}
