// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// feedEntry is one raw item extracted from an RSS/Atom document before
// normalization into a ResearchItem.
type feedEntry struct {
	Title       string
	Link        string
	Description string
	Author      string
	Published   time.Time
}

// feedStrategy is one way of extracting entries from feed bytes. Strategies
// are tried in order; the first one returning a non-empty result wins. The
// layered fallback guards against feed format drift without nested
// conditionals in the adapters.
type feedStrategy interface {
	Name() string
	Extract(data []byte) []feedEntry
}

// parseFeed runs the strategies in order and returns the first non-empty
// extraction, or nil if every strategy comes up empty.
func parseFeed(data []byte, strategies ...feedStrategy) []feedEntry {
	for _, s := range strategies {
		if entries := s.Extract(data); len(entries) > 0 {
			return entries
		}
	}
	return nil
}

// defaultFeedStrategies is the standard strategy order: a full feed parser
// first, a tolerant pattern match second.
func defaultFeedStrategies() []feedStrategy {
	return []feedStrategy{gofeedStrategy{}, regexFeedStrategy{}}
}

// gofeedStrategy parses the document with the gofeed universal parser.
type gofeedStrategy struct{}

func (gofeedStrategy) Name() string { return "gofeed" }

func (gofeedStrategy) Extract(data []byte) []feedEntry {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil || feed == nil {
		return nil
	}
	var entries []feedEntry
	for _, it := range feed.Items {
		e := feedEntry{
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Description: it.Description,
		}
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			e.Author = strings.TrimSpace(it.Authors[0].Name)
		}
		if it.PublishedParsed != nil {
			e.Published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			e.Published = *it.UpdatedParsed
		}
		entries = append(entries, e)
	}
	return entries
}

// regexFeedStrategy is the tolerant fallback: pull <item> blocks with a
// pattern match and extract the required subfields. Items missing a title
// or link are skipped.
type regexFeedStrategy struct{}

func (regexFeedStrategy) Name() string { return "regex" }

var (
	itemBlockPattern = regexp.MustCompile(`(?s)<item[^>]*>(.*?)</item>`)
	titlePattern     = regexp.MustCompile(`(?s)<title[^>]*>(.*?)</title>`)
	linkPattern      = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	descPattern      = regexp.MustCompile(`(?s)<description[^>]*>(.*?)</description>`)
	pubDatePattern   = regexp.MustCompile(`(?s)<pubDate[^>]*>(.*?)</pubDate>`)
	creatorPattern   = regexp.MustCompile(`(?s)<dc:creator[^>]*>(.*?)</dc:creator>`)
	cdataPattern     = regexp.MustCompile(`(?s)^<!\[CDATA\[(.*)\]\]>$`)
)

func (regexFeedStrategy) Extract(data []byte) []feedEntry {
	blocks := itemBlockPattern.FindAllStringSubmatch(string(data), -1)
	var entries []feedEntry
	for _, block := range blocks {
		body := block[1]
		e := feedEntry{
			Title:       unwrapCDATA(firstMatch(titlePattern, body)),
			Link:        unwrapCDATA(firstMatch(linkPattern, body)),
			Description: unwrapCDATA(firstMatch(descPattern, body)),
			Author:      unwrapCDATA(firstMatch(creatorPattern, body)),
		}
		if e.Title == "" || e.Link == "" {
			continue
		}
		if raw := firstMatch(pubDatePattern, body); raw != "" {
			for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
				if t, err := time.Parse(layout, raw); err == nil {
					e.Published = t
					break
				}
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func firstMatch(p *regexp.Regexp, s string) string {
	m := p.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func unwrapCDATA(s string) string {
	if m := cdataPattern.FindStringSubmatch(s); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return s
}
