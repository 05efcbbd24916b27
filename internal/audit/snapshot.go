// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit persists run evidence: YAML snapshots of the research
// bundle and rendered prompt, plus a SQLite index of past runs.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/mshore/blogforge/pkg/types"
)

// PlanEntry is one platform request recorded in a snapshot.
type PlanEntry struct {
	Platform types.SourcePlatform `yaml:"platform"`
	Count    int                  `yaml:"count"`
}

// RunSnapshot is the on-disk record of one pipeline run: what was asked,
// what research came back, and the exact prompt sent to the model. Written
// for reproducibility; a run can be replayed from its snapshot without
// re-querying any platform.
type RunSnapshot struct {
	Subject   string               `yaml:"subject"`
	Kind      types.GenerationKind `yaml:"kind"`
	Audience  string               `yaml:"audience,omitempty"`
	Keywords  []string             `yaml:"keywords,omitempty"`
	Model     string               `yaml:"model,omitempty"`
	CreatedAt time.Time            `yaml:"created_at"`
	Plan      []PlanEntry          `yaml:"plan"`
	Bundle    types.ResearchBundle `yaml:"bundle"`
	Prompt    string               `yaml:"prompt"`
}

// WriteSnapshot saves a snapshot as YAML, creating parent directories.
func WriteSnapshot(path string, snap RunSnapshot) error {
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot from a YAML file.
func ReadSnapshot(path string) (RunSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap RunSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return RunSnapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}

// SnapshotFilename builds a stable filename from the subject slug and an
// ISO-8601 timestamp, e.g. "dallas-mavericks-20260115T093000Z.yaml".
func SnapshotFilename(subject string, t time.Time) string {
	return fmt.Sprintf("%s-%s.yaml", Slug(subject), t.UTC().Format("20060102T150405Z"))
}

// Slug lowercases the subject and keeps letters and digits, joining
// runs with hyphens. Used for snapshot and output filenames.
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "run"
	}
	return out
}
