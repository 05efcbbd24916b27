// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse extracts structured payloads from raw model output. It
// never raises past its boundary: blog extraction falls back to the whole
// raw text for the body, and topic-list extraction degrades to a typed
// error-carrying result.
package parse

import (
	"sort"
	"strings"

	"github.com/mshore/blogforge/pkg/types"
)

// Blog section markers. Matching is order-independent: each field runs from
// its marker to the nearest following marker or the end of the text.
const (
	markerTitle   = "TITLE:"
	markerMeta    = "META_DESCRIPTION:"
	markerSummary = "SUMMARY:"
	markerTags    = "TAGS:"
	markerBody    = "BODY:"
)

var blogMarkers = []string{markerTitle, markerMeta, markerSummary, markerTags, markerBody}

// Blog extracts the five blog fields from raw model output. Missing markers
// yield empty fields, except BODY, which falls back to the entire raw text
// so the document body is never empty.
func Blog(raw string) types.GeneratedDocument {
	doc := types.GeneratedDocument{RawContent: raw}

	positions := markerPositions(raw)

	doc.Title = fieldContent(raw, positions, markerTitle)
	doc.MetaDescription = fieldContent(raw, positions, markerMeta)
	doc.Summary = fieldContent(raw, positions, markerSummary)
	doc.Body = fieldContent(raw, positions, markerBody)

	if tags := fieldContent(raw, positions, markerTags); tags != "" {
		doc.Tags = splitTags(tags)
	}

	if doc.Body == "" {
		doc.Body = strings.TrimSpace(raw)
	}
	return doc
}

// markerPosition records where one marker occurs in the text.
type markerPosition struct {
	marker string
	start  int // index of the marker itself
	end    int // index just past the marker, where content begins
}

// markerPositions finds the first occurrence of every known marker.
func markerPositions(raw string) []markerPosition {
	var positions []markerPosition
	for _, m := range blogMarkers {
		if idx := strings.Index(raw, m); idx >= 0 {
			positions = append(positions, markerPosition{marker: m, start: idx, end: idx + len(m)})
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })
	return positions
}

// fieldContent returns the trimmed text between a marker and the next known
// marker, or "" when the marker is absent.
func fieldContent(raw string, positions []markerPosition, marker string) string {
	for i, p := range positions {
		if p.marker != marker {
			continue
		}
		end := len(raw)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		return strings.TrimSpace(raw[p.end:end])
	}
	return ""
}

// splitTags splits a comma-separated tag line into a trimmed, ordered list.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
