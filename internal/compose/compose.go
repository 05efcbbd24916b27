// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose renders generation requests from a subject, audience,
// keywords, and aggregated research. Rendering is pure: identical inputs,
// including the injected current date, produce byte-identical prompt text.
package compose

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mshore/blogforge/pkg/types"
)

// Params carries every input of a composition. Now is explicit so callers
// control the rendered date.
type Params struct {
	Kind     types.GenerationKind
	Subject  string
	Audience string
	Keywords []string

	// TopicCount is how many ideas a topic-list request asks for (default 10).
	TopicCount int

	Bundle types.ResearchBundle
	Now    time.Time
}

// promptItem is one research item prepared for rendering. Ordinals are
// global across platforms and match the citation numbers the blog contract
// demands.
type promptItem struct {
	Ordinal int
	Title   string
	Body    string
	Date    string
	URL     string
	Author  string
}

// platformBlock groups rendered items under one platform heading.
type platformBlock struct {
	Label string
	Items []promptItem
}

type promptData struct {
	Subject        string
	Audience       string
	Date           string
	Keywords       []string
	PrimaryKeyword string
	Blocks         []platformBlock
	ItemTotal      int
	TopicCount     int
}

// Compose renders the generation request for the given parameters.
func Compose(p Params) (types.GenerationRequest, error) {
	if strings.TrimSpace(p.Subject) == "" {
		return types.GenerationRequest{}, fmt.Errorf("subject is required")
	}

	audience := strings.TrimSpace(p.Audience)
	if audience == "" {
		audience = "a general audience"
	}

	keywords := cleanKeywords(p.Keywords)

	data := promptData{
		Subject:    strings.TrimSpace(p.Subject),
		Audience:   audience,
		Date:       p.Now.Format("2006-01-02"),
		Keywords:   keywords,
		Blocks:     buildBlocks(p.Bundle),
		ItemTotal:  len(p.Bundle.Items),
		TopicCount: p.TopicCount,
	}
	if len(keywords) > 0 {
		data.PrimaryKeyword = keywords[0]
	}
	if data.TopicCount <= 0 {
		data.TopicCount = 10
	}

	var tmpl *template.Template
	switch p.Kind {
	case types.KindBlog:
		tmpl = blogPromptTmpl
	case types.KindTopicList:
		tmpl = topicsPromptTmpl
	default:
		return types.GenerationRequest{}, fmt.Errorf("unknown generation kind %q", p.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return types.GenerationRequest{}, fmt.Errorf("rendering %s prompt: %w", p.Kind, err)
	}

	return types.GenerationRequest{
		Kind:     p.Kind,
		Subject:  data.Subject,
		Audience: audience,
		Keywords: keywords,
		Prompt:   buf.String(),
	}, nil
}

// buildBlocks groups bundle items by platform in first-appearance order and
// assigns global citation ordinals in bundle order.
func buildBlocks(b types.ResearchBundle) []platformBlock {
	var order []types.SourcePlatform
	index := make(map[types.SourcePlatform]int)

	for _, it := range b.Items {
		if _, ok := index[it.Platform]; !ok {
			index[it.Platform] = len(order)
			order = append(order, it.Platform)
		}
	}

	blocks := make([]platformBlock, len(order))
	for i, p := range order {
		blocks[i].Label = p.Label()
	}

	for i, it := range b.Items {
		item := promptItem{
			Ordinal: i + 1,
			Title:   it.Title,
			Body:    it.Body,
			URL:     it.URL,
			Author:  it.Author,
		}
		if !it.PublishedAt.IsZero() {
			item.Date = it.PublishedAt.Format("2006-01-02")
		}
		bi := index[it.Platform]
		blocks[bi].Items = append(blocks[bi].Items, item)
	}
	return blocks
}

// cleanKeywords drops blank entries, preserving order. The first surviving
// keyword is primary.
func cleanKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
