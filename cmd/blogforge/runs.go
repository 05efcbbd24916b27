// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mshore/blogforge/internal/audit"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect past generation runs",
	Long: `Runs lists and shows entries from the run index, which records every
blog and topics invocation with its subject, model, research item count,
and output path.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := audit.NewStore(auditConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(context.Background())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-5s  %-7s  %-30s  %-6s  %-16s  %s\n",
			"ID", "Kind", "Subject", "Items", "Date", "Output")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
		for _, r := range records {
			subject := r.Subject
			if len(subject) > 30 {
				subject = subject[:27] + "..."
			}
			fmt.Fprintf(os.Stdout, "%-5d  %-7s  %-30s  %-6d  %-16s  %s\n",
				r.ID, r.Kind, subject, r.ItemCount,
				r.CreatedAt.Format("2006-01-02 15:04"), r.OutputPath)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one run in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		store, err := audit.NewStore(auditConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		r, err := store.Get(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Run %d\n", r.ID)
		fmt.Printf("  Kind:      %s\n", r.Kind)
		fmt.Printf("  Subject:   %s\n", r.Subject)
		if r.Audience != "" {
			fmt.Printf("  Audience:  %s\n", r.Audience)
		}
		fmt.Printf("  Model:     %s\n", r.Model)
		fmt.Printf("  Items:     %d\n", r.ItemCount)
		if r.WarningCount > 0 {
			fmt.Printf("  Warnings:  %d\n", r.WarningCount)
		}
		fmt.Printf("  Created:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Output:    %s\n", r.OutputPath)
		if r.SnapshotPath != "" {
			fmt.Printf("  Snapshot:  %s\n", r.SnapshotPath)
		}
		return nil
	},
}

func init() {
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
