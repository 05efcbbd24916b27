// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// RepairStep is one named, idempotent textual repair applied to model
// output that failed to parse as JSON. Steps run in a fixed order; the
// pipeline stops as soon as a parse succeeds.
type RepairStep struct {
	Name  string
	Apply func(string) string
}

// RepairSteps returns the standard repair sequence, ordered from the most
// common model mistake to the least.
func RepairSteps() []RepairStep {
	return []RepairStep{
		{Name: "stripCodeFence", Apply: stripCodeFence},
		{Name: "unescapeQuotes", Apply: unescapeQuotes},
		{Name: "fixMiskeyedField", Apply: fixMiskeyedField},
		{Name: "quoteUnquotedKeys", Apply: quoteUnquotedKeys},
	}
}

// stripCodeFence removes a wrapping Markdown code fence (``` or ```json).
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line, including a language tag.
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// unescapeQuotes undoes wholesale quote escaping, seen when a model emits a
// JSON document as if it were embedded in a string literal. The step is a
// no-op when the text already parses.
func unescapeQuotes(s string) string {
	if gjson.Valid(s) || !strings.Contains(s, `\"`) {
		return s
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}

// Known mis-keyed spellings of the keyPoints field.
var miskeyedKeyPoints = []string{`"key_points"`, `"keypoints"`, `"key points"`}

// fixMiskeyedField renames known wrong spellings of "keyPoints" to the
// schema's name.
func fixMiskeyedField(s string) string {
	for _, wrong := range miskeyedKeyPoints {
		s = strings.ReplaceAll(s, wrong, `"keyPoints"`)
	}
	return s
}

// unquotedKeyPattern matches an object key missing its quotes, anchored on
// the preceding '{' or ',' so quoted keys and string contents are left alone.
var unquotedKeyPattern = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)

// quoteUnquotedKeys wraps bare object keys in quotes.
func quoteUnquotedKeys(s string) string {
	return unquotedKeyPattern.ReplaceAllString(s, `${1}"${2}"${3}`)
}
