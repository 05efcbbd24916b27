// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "blogforge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResearchConfig holds settings for the research aggregation stage.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PreviewLength bounds item bodies before prompt composition (default 500).
	PreviewLength int `json:"preview_length" yaml:"preview_length"`

	// NewsAPIKey is the NewsAPI.org credential. Optional; without it the
	// NewsAPI adapter is skipped.
	NewsAPIKey string `json:"newsapi_key,omitempty" yaml:"newsapi_key,omitempty"`

	// YouTubeAPIKey is the YouTube Data API credential. Optional; without
	// it the YouTube adapter is skipped.
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" yaml:"youtube_api_key,omitempty"`

	// RedditUserAgent overrides UserAgent for Reddit requests, which
	// throttle generic agents aggressively.
	RedditUserAgent string `json:"reddit_user_agent,omitempty" yaml:"reddit_user_agent,omitempty"`
}

// GenerateConfig holds settings for the completion client.
type GenerateConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the completion endpoint credential. Required; checked
	// before any research work begins.
	APIKey string `json:"api_key" yaml:"api_key"`

	// Model is the default model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the completion endpoint, mainly for tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxTokens bounds the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// AuditConfig holds settings for run snapshot persistence.
type AuditConfig struct {
	// Dir is the base directory for audit output (snapshots and the run
	// database).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults caps `runs list` output (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
