// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

var testDefaults = TopicDefaults{
	Category: "devops",
	Audience: "platform engineers",
	Now:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
}

const validTopicsJSON = `{
  "category": "devops",
  "audience": "platform engineers",
  "generatedAt": "2026-03-01",
  "topics": [
    {
      "title": "GitOps beyond the hype",
      "summary": "What GitOps actually buys you.",
      "keyPoints": ["drift detection", "audit trails", "rollback"],
      "targetKeyword": "gitops",
      "valueProposition": "Cut through vendor noise."
    },
    {
      "title": "The case for boring pipelines",
      "summary": "Simple CI beats clever CI.",
      "keyPoints": ["fewer moving parts", "faster onboarding", "cheaper debugging"],
      "targetKeyword": "ci pipelines",
      "valueProposition": "Less time fixing the build."
    },
    {
      "title": "SLOs for internal platforms",
      "summary": "Treat the platform like a product.",
      "keyPoints": ["error budgets", "user trust", "prioritization"],
      "targetKeyword": "platform slo",
      "valueProposition": "Data over gut feel."
    }
  ]
}`

func TestTopicsDirectParse(t *testing.T) {
	set := Topics(validTopicsJSON, testDefaults, zap.NewNop())

	if set.Degraded() {
		t.Fatalf("valid JSON degraded: %s", set.Error)
	}
	if len(set.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(set.Topics))
	}
	if set.Topics[0].Title != "GitOps beyond the hype" {
		t.Errorf("title = %q", set.Topics[0].Title)
	}
	if len(set.Topics[0].KeyPoints) != 3 {
		t.Errorf("keyPoints = %v", set.Topics[0].KeyPoints)
	}
	// A direct parse keeps RawContent empty; it is only recorded when the
	// text needed repair.
	if set.RawContent != "" {
		t.Errorf("raw content = %q, want empty on direct parse", set.RawContent)
	}
}

func TestTopicsFencedJSONRepaired(t *testing.T) {
	fenced := "```json\n" + validTopicsJSON + "\n```"
	set := Topics(fenced, testDefaults, zap.NewNop())

	if set.Degraded() {
		t.Fatalf("fenced JSON degraded: %s", set.Error)
	}
	if len(set.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(set.Topics))
	}
	if set.RawContent != fenced {
		t.Error("repaired parse should record the original raw content")
	}
}

func TestTopicsMiskeyedFieldRepaired(t *testing.T) {
	miskeyed := strings.ReplaceAll(validTopicsJSON, `"keyPoints"`, `"key_points"`)
	set := Topics(miskeyed, testDefaults, zap.NewNop())

	if set.Degraded() {
		t.Fatalf("miskeyed JSON degraded: %s", set.Error)
	}
	if len(set.Topics[0].KeyPoints) != 3 {
		t.Errorf("keyPoints not recovered: %v", set.Topics[0].KeyPoints)
	}
}

func TestTopicsUnquotedKeysRepaired(t *testing.T) {
	raw := `{category: "devops", topics: [{title: "One", summary: "s", keyPoints: ["a"], targetKeyword: "k", valueProposition: "v"}]}`
	set := Topics(raw, testDefaults, zap.NewNop())

	if set.Degraded() {
		t.Fatalf("unquoted keys degraded: %s", set.Error)
	}
	if len(set.Topics) != 1 || set.Topics[0].Title != "One" {
		t.Errorf("topics = %+v", set.Topics)
	}
}

func TestTopicsDegradesOnProse(t *testing.T) {
	raw := "I'm sorry, I can't produce JSON for that request."
	set := Topics(raw, testDefaults, zap.NewNop())

	if !set.Degraded() {
		t.Fatal("prose output should degrade")
	}
	if set.Error == "" {
		t.Error("degraded set must carry a parse error")
	}
	if set.Topics == nil || len(set.Topics) != 0 {
		t.Errorf("degraded topics = %v, want empty non-nil", set.Topics)
	}
	if set.RawContent != raw {
		t.Error("degraded set must preserve raw content")
	}
	if set.Category != "devops" || set.Audience != "platform engineers" {
		t.Errorf("degraded set missing defaults: %+v", set)
	}
	if set.GeneratedAt != "2026-03-01" {
		t.Errorf("generatedAt = %q", set.GeneratedAt)
	}
}

func TestTopicsBackfill(t *testing.T) {
	raw := `{"topics": [{"title": "Solo", "summary": "s", "keyPoints": ["a"], "targetKeyword": "k", "valueProposition": "v"}]}`
	set := Topics(raw, testDefaults, zap.NewNop())

	if set.Category != "devops" {
		t.Errorf("category = %q, want backfilled default", set.Category)
	}
	if set.Audience != "platform engineers" {
		t.Errorf("audience = %q", set.Audience)
	}
	if set.GeneratedAt != "2026-03-01" {
		t.Errorf("generatedAt = %q", set.GeneratedAt)
	}
}

func TestRepairStepsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		`{\"a\": \"b\"}`,
		`{"key_points": []}`,
		`{title: "x"}`,
		validTopicsJSON,
	}
	for _, in := range inputs {
		once := in
		for _, step := range RepairSteps() {
			once = step.Apply(once)
		}
		twice := once
		for _, step := range RepairSteps() {
			twice = step.Apply(twice)
		}
		if once != twice {
			t.Errorf("repair not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}
