// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the blogforge pipeline.
package types

import "time"

// SourcePlatform identifies one external content source.
type SourcePlatform string

const (
	PlatformGoogleNews SourcePlatform = "google_news"
	PlatformNewsAPI    SourcePlatform = "newsapi"
	PlatformYouTube    SourcePlatform = "youtube"
	PlatformReddit     SourcePlatform = "reddit"
	PlatformSubstack   SourcePlatform = "substack"
)

// Label returns a human-readable name for the platform, used as the heading
// of the platform's block in the rendered prompt.
func (p SourcePlatform) Label() string {
	switch p {
	case PlatformGoogleNews:
		return "Google News"
	case PlatformNewsAPI:
		return "News Articles"
	case PlatformYouTube:
		return "YouTube Videos"
	case PlatformReddit:
		return "Reddit Discussions"
	case PlatformSubstack:
		return "Substack Newsletters"
	default:
		return string(p)
	}
}

// Engagement holds optional per-item popularity signals. Informational only;
// no downstream stage requires them.
type Engagement struct {
	// Views is the view count (video sources).
	Views int64 `json:"views,omitempty" yaml:"views,omitempty"`

	// Upvotes is the upvote or like count (forum sources).
	Upvotes int64 `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`

	// Comments is the comment count.
	Comments int64 `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// ResearchItem is the common normalized unit of external context. Each item
// is produced by exactly one adapter call and is immutable afterward.
type ResearchItem struct {
	// Platform identifies the source adapter that produced this item.
	Platform SourcePlatform `json:"platform" yaml:"platform"`

	// Title is the article, video, or post title. Required; adapters discard
	// entries whose title is empty after trimming.
	Title string `json:"title" yaml:"title"`

	// Body is the description or excerpt, truncated by the adapter to a
	// bounded preview length before prompt composition.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// URL is the canonical link back to the source, used for citation.
	// May be empty for fallback entries.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Author is the article author, channel, or poster name when known.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// PublishedAt is the publication time. Adapters that cannot determine
	// one substitute the fetch time so citation rendering always has a date.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// Engagement carries optional popularity signals.
	Engagement Engagement `json:"engagement,omitempty" yaml:"engagement,omitempty"`
}

// ResearchBundle is the ordered collection of research items for one run,
// partitioned conceptually by platform. Items appear in plan-submission
// order across platforms and adapter-return order within a platform.
type ResearchBundle struct {
	// Subject is the topic or category the research was gathered for.
	Subject string `json:"subject" yaml:"subject"`

	// GeneratedAt is the time aggregation completed.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Items is the merged, ordered item list.
	Items []ResearchItem `json:"items" yaml:"items"`

	// Counts records how many items each requested platform contributed.
	Counts map[SourcePlatform]int `json:"counts" yaml:"counts"`

	// Warnings lists per-platform skip notices, e.g. a platform that was
	// requested but has no credential configured.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ByPlatform returns the bundle's items for one platform, preserving order.
func (b *ResearchBundle) ByPlatform(p SourcePlatform) []ResearchItem {
	var out []ResearchItem
	for _, it := range b.Items {
		if it.Platform == p {
			out = append(out, it)
		}
	}
	return out
}

// IsEmpty reports whether the bundle carries no research items.
func (b *ResearchBundle) IsEmpty() bool {
	return len(b.Items) == 0
}

// GenerationKind selects the output contract of a generation request.
type GenerationKind string

const (
	// KindBlog requests a structured blog document with TITLE,
	// META_DESCRIPTION, SUMMARY, TAGS, and BODY sections.
	KindBlog GenerationKind = "blog"

	// KindTopicList requests a strict-JSON list of topic ideas.
	KindTopicList GenerationKind = "topics"
)

// GenerationRequest is the fully rendered request handed to the completion
// client. Rendering is deterministic: identical inputs produce byte-identical
// Prompt text.
type GenerationRequest struct {
	// Kind selects the output contract the prompt demands.
	Kind GenerationKind `json:"kind" yaml:"kind"`

	// Subject is the topic (blog) or category (topic list).
	Subject string `json:"subject" yaml:"subject"`

	// Audience describes the intended readership.
	Audience string `json:"audience" yaml:"audience"`

	// Keywords is the ordered SEO keyword list; the first entry is primary.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Prompt is the rendered request text.
	Prompt string `json:"prompt" yaml:"prompt"`
}
