// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mshore/blogforge/internal/audit"
	"github.com/mshore/blogforge/internal/research"
	"github.com/mshore/blogforge/pkg/types"
)

// addSourceFlags registers the per-platform count flags shared by every
// command that aggregates research. A count of 0 skips the platform.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().Int("news", 3, "Google News headlines to fetch (0-5)")
	cmd.Flags().Int("articles", 0, "NewsAPI articles to fetch (0-5, needs NEWSAPI_API_KEY)")
	cmd.Flags().Int("videos", 0, "YouTube videos to fetch (0-10, needs YOUTUBE_API_KEY)")
	cmd.Flags().Int("discussions", 0, "Reddit discussions to fetch (0-25)")
	cmd.Flags().Int("newsletters", 0, "Substack newsletters to fetch (0-10)")
}

// sourcePlan reads the count flags into an ordered aggregation plan. Flag
// order here fixes the merge order of the bundle.
func sourcePlan(cmd *cobra.Command) []research.SourceRequest {
	news, _ := cmd.Flags().GetInt("news")
	articles, _ := cmd.Flags().GetInt("articles")
	videos, _ := cmd.Flags().GetInt("videos")
	discussions, _ := cmd.Flags().GetInt("discussions")
	newsletters, _ := cmd.Flags().GetInt("newsletters")

	return []research.SourceRequest{
		{Platform: types.PlatformGoogleNews, Count: news},
		{Platform: types.PlatformNewsAPI, Count: articles},
		{Platform: types.PlatformYouTube, Count: videos},
		{Platform: types.PlatformReddit, Count: discussions},
		{Platform: types.PlatformSubstack, Count: newsletters},
	}
}

// researchConfig assembles the research stage configuration from viper and
// the loaded credentials.
func researchConfig() types.ResearchConfig {
	return types.ResearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("research.timeout"),
			UserAgent: viper.GetString("research.user_agent"),
		},
		PreviewLength:   viper.GetInt("research.preview_length"),
		NewsAPIKey:      credential("NEWSAPI_API_KEY", "newsapi-api-key"),
		YouTubeAPIKey:   credential("YOUTUBE_API_KEY", "youtube-api-key"),
		RedditUserAgent: viper.GetString("research.reddit_user_agent"),
	}
}

// generateConfig assembles the completion client configuration.
func generateConfig(model string) types.GenerateConfig {
	if model == "" {
		model = viper.GetString("generate.model")
	}
	return types.GenerateConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("generate.timeout"),
			UserAgent: viper.GetString("research.user_agent"),
		},
		APIKey:    credential("OPENAI_API_KEY", "openai-api-key"),
		Model:     model,
		BaseURL:   viper.GetString("generate.base_url"),
		MaxTokens: viper.GetInt("generate.max_tokens"),
	}
}

func auditConfig() types.AuditConfig {
	return types.AuditConfig{
		Dir:        viper.GetString("audit.dir"),
		MaxResults: viper.GetInt("audit.max_results"),
	}
}

// buildAdapters constructs every platform adapter from the research config.
func buildAdapters(cfg types.ResearchConfig) map[types.SourcePlatform]research.Adapter {
	return map[types.SourcePlatform]research.Adapter{
		types.PlatformGoogleNews: research.NewGoogleNewsAdapter(cfg, logger),
		types.PlatformNewsAPI:    research.NewNewsAPIAdapter(cfg, logger),
		types.PlatformYouTube:    research.NewYouTubeAdapter(cfg, logger),
		types.PlatformReddit:     research.NewRedditAdapter(cfg, logger),
		types.PlatformSubstack:   research.NewSubstackAdapter(cfg, logger),
	}
}

// keywordList splits a comma-separated keyword flag, dropping blanks.
func keywordList(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// writeOutput writes content to path, creating parent directories.
func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// saveSnapshot persists the run snapshot and returns its path.
func saveSnapshot(snap audit.RunSnapshot) (string, error) {
	dir := filepath.Join(auditConfig().Dir, "snapshots")
	path := filepath.Join(dir, audit.SnapshotFilename(snap.Subject, snap.CreatedAt))
	if err := audit.WriteSnapshot(path, snap); err != nil {
		return "", err
	}
	return path, nil
}

// recordRun indexes a completed run. Failures are logged, not fatal: the
// output file is already on disk and losing the index row should not fail
// the command.
func recordRun(ctx context.Context, rec audit.RunRecord) {
	store, err := audit.NewStore(auditConfig())
	if err != nil {
		logger.Warn("opening run store failed", zap.Error(err))
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, rec); err != nil {
		logger.Warn("recording run failed", zap.Error(err))
	}
}

// planEntries converts an aggregation plan to snapshot form.
func planEntries(plan []research.SourceRequest) []audit.PlanEntry {
	entries := make([]audit.PlanEntry, 0, len(plan))
	for _, req := range plan {
		if req.Count > 0 {
			entries = append(entries, audit.PlanEntry{Platform: req.Platform, Count: req.Count})
		}
	}
	return entries
}

// defaultOutputPath builds output/<kind>/<slug>-<date>.<ext>.
func defaultOutputPath(kind, subject, ext string, now time.Time) string {
	name := fmt.Sprintf("%s-%s.%s", audit.Slug(subject), now.Format("2006-01-02"), ext)
	return filepath.Join("output", kind, name)
}
