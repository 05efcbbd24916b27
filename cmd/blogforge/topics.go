// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mshore/blogforge/internal/audit"
	"github.com/mshore/blogforge/internal/compose"
	"github.com/mshore/blogforge/internal/generate"
	"github.com/mshore/blogforge/internal/parse"
	"github.com/mshore/blogforge/internal/research"
	"github.com/mshore/blogforge/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Generate a JSON list of blog topic ideas",
	Long: `Topics gathers research for a content category, asks the completion
endpoint for topic ideas as strict JSON, repairs common formatting mistakes
in the response, and writes the idea list as pretty-printed JSON.

A response that stays unparseable after repair still produces a valid
output file: an empty topic list carrying the raw model output and the
parse error.`,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().String("category", "", "content category (required)")
	topicsCmd.Flags().String("audience", "", "intended readership")
	topicsCmd.Flags().String("keywords", "", "comma-separated SEO keywords, primary first")
	topicsCmd.Flags().Int("count", 10, "number of topic ideas to request")
	topicsCmd.Flags().String("model", "", "model identifier (default from config)")
	topicsCmd.Flags().String("output", "", "output path (default output/topics/<slug>-<date>.json)")
	topicsCmd.Flags().Bool("save-research", false, "write a YAML snapshot of the research bundle and prompt")
	addSourceFlags(topicsCmd)

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	if category == "" {
		return fmt.Errorf("--category is required")
	}

	model, _ := cmd.Flags().GetString("model")
	gcfg := generateConfig(model)

	client, err := generate.NewClient(gcfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()
	plan := sourcePlan(cmd)

	bundle := research.Aggregate(ctx, category, plan, buildAdapters(researchConfig()), logger)
	for _, warning := range bundle.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}

	audienceFlag, _ := cmd.Flags().GetString("audience")
	keywordsFlag, _ := cmd.Flags().GetString("keywords")
	count, _ := cmd.Flags().GetInt("count")

	req, err := compose.Compose(compose.Params{
		Kind:       types.KindTopicList,
		Subject:    category,
		Audience:   audienceFlag,
		Keywords:   keywordList(keywordsFlag),
		TopicCount: count,
		Bundle:     bundle,
		Now:        now,
	})
	if err != nil {
		return err
	}

	snapshotPath := ""
	if save, _ := cmd.Flags().GetBool("save-research"); save {
		snapshotPath, err = saveSnapshot(audit.RunSnapshot{
			Subject:   category,
			Kind:      types.KindTopicList,
			Audience:  req.Audience,
			Keywords:  req.Keywords,
			Model:     gcfg.Model,
			CreatedAt: now,
			Plan:      planEntries(plan),
			Bundle:    bundle,
			Prompt:    req.Prompt,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Research snapshot:", snapshotPath)
	}

	raw, err := client.Complete(ctx, req.Prompt, gcfg.Model)
	if err != nil {
		return err
	}

	set := parse.Topics(raw, parse.TopicDefaults{
		Category: category,
		Audience: req.Audience,
		Now:      now,
	}, logger)

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling topic list: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = defaultOutputPath("topics", category, "json", now)
	}
	if err := writeOutput(outPath, string(data)+"\n"); err != nil {
		return err
	}

	recordRun(ctx, audit.RunRecord{
		Subject:      category,
		Kind:         types.KindTopicList,
		Audience:     req.Audience,
		Model:        gcfg.Model,
		ItemCount:    len(bundle.Items),
		WarningCount: len(bundle.Warnings),
		OutputPath:   outPath,
		SnapshotPath: snapshotPath,
		CreatedAt:    now,
	})

	if set.Degraded() {
		fmt.Fprintln(os.Stderr, "warning: topic JSON could not be parsed; wrote degraded result:", set.Error)
	}
	fmt.Printf("Wrote %s (%d topics)\n", outPath, len(set.Topics))
	return nil
}
