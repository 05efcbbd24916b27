// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// GeneratedDocument is a parsed blog post. RawContent always holds the
// unmodified model output so a failed field extraction loses nothing.
type GeneratedDocument struct {
	// Title is the post title.
	Title string `json:"title" yaml:"title"`

	// MetaDescription is the SEO meta description (~160 characters).
	MetaDescription string `json:"meta_description" yaml:"meta_description"`

	// Summary is a short lead paragraph.
	Summary string `json:"summary" yaml:"summary"`

	// Tags is the ordered tag list.
	Tags []string `json:"tags" yaml:"tags"`

	// Body is the Markdown body. Never empty: when field extraction fails
	// the body falls back to the entire raw output.
	Body string `json:"body" yaml:"body"`

	// RawContent is the unmodified model output, retained for debugging.
	RawContent string `json:"raw_content,omitempty" yaml:"raw_content,omitempty"`
}

// Markdown renders the document as `# {title}` followed by the body.
func (d *GeneratedDocument) Markdown() string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return d.Body
	}
	return fmt.Sprintf("# %s\n\n%s", title, d.Body)
}

// frontMatter is the YAML metadata block prefixed to a document by
// MarkdownWithFrontMatter.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description,omitempty"`
	Summary     string   `yaml:"summary,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// MarkdownWithFrontMatter renders the document with a YAML front-matter
// block followed by the Markdown body. The date is an explicit input so
// rendering stays deterministic.
func (d *GeneratedDocument) MarkdownWithFrontMatter(date time.Time) (string, error) {
	fm := frontMatter{
		Title:       strings.TrimSpace(d.Title),
		Date:        date.Format("2006-01-02"),
		Description: strings.TrimSpace(d.MetaDescription),
		Summary:     strings.TrimSpace(d.Summary),
		Tags:        d.Tags,
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}
	return fmt.Sprintf("---\n%s---\n\n%s", string(data), d.Body), nil
}

// TopicIdea is one proposed content topic.
type TopicIdea struct {
	// Title is the proposed post title.
	Title string `json:"title" yaml:"title"`

	// Summary describes the topic in one or two sentences.
	Summary string `json:"summary" yaml:"summary"`

	// KeyPoints lists 3-5 points the post should cover.
	KeyPoints []string `json:"keyPoints" yaml:"key_points"`

	// TargetKeyword is the primary SEO keyword for the topic.
	TargetKeyword string `json:"targetKeyword" yaml:"target_keyword"`

	// ValueProposition explains why the audience would read it.
	ValueProposition string `json:"valueProposition" yaml:"value_proposition"`
}

// TopicIdeaSet is the parsed result of a topic-list generation. It is always
// schema-complete: on unrecoverable parse failure Topics is empty, RawContent
// preserves the model output, and Error carries the parser's failure message.
type TopicIdeaSet struct {
	// Category is the content category the ideas belong to.
	Category string `json:"category" yaml:"category"`

	// Audience is the intended readership.
	Audience string `json:"audience" yaml:"audience"`

	// GeneratedAt is the generation date in YYYY-MM-DD format.
	GeneratedAt string `json:"generatedAt" yaml:"generated_at"`

	// Topics is the ordered idea list. Empty on degraded results.
	Topics []TopicIdea `json:"topics" yaml:"topics"`

	// RawContent is the unmodified model output. Set only when parsing
	// needed repair or failed outright.
	RawContent string `json:"rawContent,omitempty" yaml:"raw_content,omitempty"`

	// Error is the parse failure message on degraded results, empty
	// otherwise. Lets callers distinguish "the model proposed nothing"
	// from "parsing failed".
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Degraded reports whether the set is a parse-failure fallback.
func (s *TopicIdeaSet) Degraded() bool {
	return s.Error != ""
}
