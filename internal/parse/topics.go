// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// TopicDefaults backfills top-level fields the model left out, so the
// returned set is always schema-complete.
type TopicDefaults struct {
	Category string
	Audience string
	Now      time.Time
}

// Topics parses raw model output into a TopicIdeaSet. The raw text is
// parsed directly first; on failure the repair steps run in order and the
// parse is retried exactly once. If that also fails, the result degrades to
// an empty set carrying the raw content and the parser's failure message.
// Topics never returns an error.
func Topics(raw string, defaults TopicDefaults, log *zap.Logger) types.TopicIdeaSet {
	trimmed := strings.TrimSpace(raw)

	set, err := decodeTopics(trimmed)
	if err == nil {
		return backfill(set, "", defaults)
	}

	repaired := trimmed
	var applied []string
	for _, step := range RepairSteps() {
		repaired = step.Apply(repaired)
		applied = append(applied, step.Name)
	}

	set, retryErr := decodeTopics(repaired)
	if retryErr == nil {
		log.Info("topic JSON parsed after repair", zap.Strings("steps", applied))
		return backfill(set, raw, defaults)
	}

	log.Warn("topic JSON unrecoverable",
		zap.NamedError("direct", err),
		zap.NamedError("repaired", retryErr))
	return types.TopicIdeaSet{
		Category:    defaults.Category,
		Audience:    defaults.Audience,
		GeneratedAt: defaults.Now.Format("2006-01-02"),
		Topics:      []types.TopicIdea{},
		RawContent:  raw,
		Error:       "parsing topic JSON: " + retryErr.Error(),
	}
}

func decodeTopics(s string) (types.TopicIdeaSet, error) {
	var set types.TopicIdeaSet
	if err := json.Unmarshal([]byte(s), &set); err != nil {
		return types.TopicIdeaSet{}, err
	}
	return set, nil
}

// backfill fills missing top-level fields from the defaults and normalizes
// a nil topic list to an empty one.
func backfill(set types.TopicIdeaSet, rawContent string, defaults TopicDefaults) types.TopicIdeaSet {
	if set.Category == "" {
		set.Category = defaults.Category
	}
	if set.Audience == "" {
		set.Audience = defaults.Audience
	}
	if set.GeneratedAt == "" {
		set.GeneratedAt = defaults.Now.Format("2006-01-02")
	}
	if set.Topics == nil {
		set.Topics = []types.TopicIdea{}
	}
	set.RawContent = rawContent
	return set
}
