// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the blogforge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mshore/blogforge/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the process-wide structured logger, built in PersistentPreRunE.
var logger *zap.Logger

// loadedSecrets holds API keys loaded from .secrets/ at startup.
// Environment variables take precedence; see credential().
var loadedSecrets map[string]string

// credential resolves one credential: environment first, then the secrets
// directory.
func credential(envVar, fileKey string) string {
	return secrets.Resolve(loadedSecrets, envVar, fileKey)
}

// rootCmd is the base command for the blogforge CLI.
var rootCmd = &cobra.Command{
	Use:   "blogforge",
	Short: "Research-grounded blog and topic generation",
	Long: `blogforge gathers contextual research from news search, YouTube, Reddit,
and Substack, assembles it into a generation prompt, calls a completion
endpoint, and writes the result to disk as a Markdown post or a JSON topic
list.

Each run is a single-shot pipeline: research, compose, generate, parse,
write. Use the research subcommand to inspect aggregation without spending
completion tokens.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional convenience; absence is not an error.
		_ = godotenv.Load()

		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			logger, err = cfg.Build()
		}
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}

		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./blogforge.yaml or ~/.config/blogforge/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blogforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "blogforge"))
		}
	}

	viper.SetDefault("research.timeout", 30*time.Second)
	viper.SetDefault("research.user_agent", "blogforge/0.1")
	viper.SetDefault("research.preview_length", 500)
	viper.SetDefault("generate.model", "gpt-4o-mini")
	viper.SetDefault("generate.max_tokens", 4096)
	viper.SetDefault("generate.timeout", 120*time.Second)
	viper.SetDefault("audit.dir", "output/audit")

	viper.SetEnvPrefix("BLOGFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
