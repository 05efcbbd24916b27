// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research fans out to external content platforms and merges their
// results into a single ordered research bundle.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// Adapter fetches research items from a single platform. Fetch never
// returns an error: transport and parse failures are contained inside the
// adapter, logged, and surface only as an empty result. Fetch with
// maxCount <= 0 returns nil without touching the network.
type Adapter interface {
	Platform() types.SourcePlatform
	Configured() bool
	Fetch(ctx context.Context, query string, maxCount int) []types.ResearchItem
}

// SourceRequest pairs a platform with its requested item count. Plan order
// determines merge order in the bundle.
type SourceRequest struct {
	Platform types.SourcePlatform
	Count    int
}

// Aggregate invokes every planned adapter with a count > 0 concurrently and
// merges the results preserving plan-submission order, then within-platform
// adapter-return order. It never fails: a platform that errors internally
// contributes nothing, and a requested platform with no credential is
// skipped with a bundle warning.
func Aggregate(ctx context.Context, subject string, plan []SourceRequest, adapters map[types.SourcePlatform]Adapter, log *zap.Logger) types.ResearchBundle {
	bundle := types.ResearchBundle{
		Subject: subject,
		Counts:  make(map[types.SourcePlatform]int),
	}

	type invocation struct {
		adapter Adapter
		count   int
	}

	var invoked []invocation
	for _, req := range plan {
		if req.Count <= 0 {
			continue
		}
		ad, ok := adapters[req.Platform]
		if !ok {
			continue
		}
		if !ad.Configured() {
			logSourceError(log, &SourceError{Platform: req.Platform, Kind: ErrAuthNotConfigured})
			bundle.Warnings = append(bundle.Warnings,
				fmt.Sprintf("source %s skipped: missing credential", req.Platform))
			continue
		}
		invoked = append(invoked, invocation{adapter: ad, count: req.Count})
	}

	// Indexed results keep plan-submission order regardless of which
	// adapter finishes first.
	results := make([][]types.ResearchItem, len(invoked))
	var wg sync.WaitGroup
	for i, inv := range invoked {
		wg.Add(1)
		go func(i int, inv invocation) {
			defer wg.Done()
			results[i] = inv.adapter.Fetch(ctx, subject, inv.count)
		}(i, inv)
	}
	wg.Wait()

	for i, items := range results {
		platform := invoked[i].adapter.Platform()
		bundle.Counts[platform] = len(items)
		bundle.Items = append(bundle.Items, items...)
		log.Info("source fetched",
			zap.String("platform", string(platform)),
			zap.Int("requested", invoked[i].count),
			zap.Int("returned", len(items)))
	}

	bundle.GeneratedAt = time.Now().UTC()
	return bundle
}

// clampCount bounds a requested count to [0, ceiling].
func clampCount(requested, ceiling int) int {
	if requested <= 0 {
		return 0
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}

// defaultPreviewLength bounds item bodies handed to the composer.
const defaultPreviewLength = 500

// preview trims and truncates a body to the configured preview length.
func preview(s string, max int) string {
	if max <= 0 {
		max = defaultPreviewLength
	}
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// tagPattern matches embedded HTML markup inside feed text fields.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup and decodes HTML entities from feed text.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// FormatTable writes a bundle as a human-readable table to w.
func FormatTable(b types.ResearchBundle, w io.Writer) {
	if b.IsEmpty() {
		fmt.Fprintln(w, "No research items found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-60s  %-10s\n", "#", "Platform", "Title", "Date")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for i, it := range b.Items {
		title := it.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		date := ""
		if !it.PublishedAt.IsZero() {
			date = it.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-14s  %-60s  %-10s\n", i+1, it.Platform, title, date)
	}

	fmt.Fprintf(w, "\n%d items", len(b.Items))
	for _, warning := range b.Warnings {
		fmt.Fprintf(w, "\nwarning: %s", warning)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes a bundle as indented JSON to w.
func FormatJSON(b types.ResearchBundle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
