// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mshore/blogforge/internal/audit"
	"github.com/mshore/blogforge/internal/research"
	"github.com/mshore/blogforge/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Aggregate research without generating anything",
	Long: `Research runs the aggregation stage only: it fans out to the requested
platforms, merges the results, and prints them. Useful for checking what
context a blog or topics run would be grounded in, without spending
completion tokens. No completion credential is needed.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("topic", "", "research topic (required)")
	researchCmd.Flags().Bool("json", false, "output the bundle as JSON")
	researchCmd.Flags().Bool("save", false, "write a YAML snapshot of the bundle")
	addSourceFlags(researchCmd)

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("--topic is required")
	}

	ctx := context.Background()
	plan := sourcePlan(cmd)

	bundle := research.Aggregate(ctx, topic, plan, buildAdapters(researchConfig()), logger)

	if save, _ := cmd.Flags().GetBool("save"); save {
		path, err := saveSnapshot(audit.RunSnapshot{
			Subject:   topic,
			Kind:      types.GenerationKind("research"),
			CreatedAt: time.Now().UTC(),
			Plan:      planEntries(plan),
			Bundle:    bundle,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Research snapshot:", path)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return research.FormatJSON(bundle, os.Stdout)
	}
	research.FormatTable(bundle, os.Stdout)
	return nil
}
