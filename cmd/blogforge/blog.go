// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mshore/blogforge/internal/audit"
	"github.com/mshore/blogforge/internal/compose"
	"github.com/mshore/blogforge/internal/generate"
	"github.com/mshore/blogforge/internal/parse"
	"github.com/mshore/blogforge/internal/research"
	"github.com/mshore/blogforge/pkg/types"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Generate a research-grounded blog post",
	Long: `Blog gathers research for a topic from the requested platforms, composes
a generation prompt with numbered citations, calls the completion endpoint,
and writes the post as Markdown.

Platforms with a count of 0 are skipped entirely. Platforms whose
credential is missing are skipped with a warning; the run still proceeds
on whatever research remains.`,
	RunE: runBlog,
}

func init() {
	blogCmd.Flags().String("topic", "", "blog post topic (required)")
	blogCmd.Flags().String("audience", "", "intended readership")
	blogCmd.Flags().String("keywords", "", "comma-separated SEO keywords, primary first")
	blogCmd.Flags().String("model", "", "model identifier (default from config)")
	blogCmd.Flags().String("output", "", "output path (default output/posts/<slug>-<date>.md)")
	blogCmd.Flags().Bool("front-matter", false, "prefix the post with a YAML front-matter block")
	blogCmd.Flags().Bool("save-research", false, "write a YAML snapshot of the research bundle and prompt")
	addSourceFlags(blogCmd)

	rootCmd.AddCommand(blogCmd)
}

func runBlog(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("--topic is required")
	}

	model, _ := cmd.Flags().GetString("model")
	gcfg := generateConfig(model)

	// Client construction checks the API key precondition, so a missing
	// credential fails here, before any adapter is invoked.
	client, err := generate.NewClient(gcfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()
	plan := sourcePlan(cmd)

	bundle := research.Aggregate(ctx, topic, plan, buildAdapters(researchConfig()), logger)
	for _, warning := range bundle.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}

	audienceFlag, _ := cmd.Flags().GetString("audience")
	keywordsFlag, _ := cmd.Flags().GetString("keywords")

	req, err := compose.Compose(compose.Params{
		Kind:     types.KindBlog,
		Subject:  topic,
		Audience: audienceFlag,
		Keywords: keywordList(keywordsFlag),
		Bundle:   bundle,
		Now:      now,
	})
	if err != nil {
		return err
	}

	snapshotPath := ""
	if save, _ := cmd.Flags().GetBool("save-research"); save {
		snapshotPath, err = saveSnapshot(audit.RunSnapshot{
			Subject:   topic,
			Kind:      types.KindBlog,
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

	doc := parse.Blog(raw)
	if dangling := parse.DanglingCitations(doc.Body, len(bundle.Items)); len(dangling) > 0 {
		logger.Warn("post cites sources outside the research bundle",
			zap.Ints("ordinals", dangling))
	}

	content := doc.Markdown()
	if fm, _ := cmd.Flags().GetBool("front-matter"); fm {
		content, err = doc.MarkdownWithFrontMatter(now)
		if err != nil {
			return err
		}
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = defaultOutputPath("posts", topic, "md", now)
	}
	if err := writeOutput(outPath, content); err != nil {
		return err
	}

	recordRun(ctx, audit.RunRecord{
		Subject:      topic,
		Kind:         types.KindBlog,
		Audience:     req.Audience,
		Model:        gcfg.Model,
		ItemCount:    len(bundle.Items),
		WarningCount: len(bundle.Warnings),
		OutputPath:   outPath,
		SnapshotPath: snapshotPath,
		CreatedAt:    now,
	})

	fmt.Printf("Wrote %s (%d research items)\n", outPath, len(bundle.Items))
	return nil
}
