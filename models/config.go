// Package models defines data structures for profiles, requests and results.
package models

import "time"

// RunConfig holds runtime configuration for process and batch runs.
// All values come from CLI flags and the environment, not config files.
type RunConfig struct {
	Engine    string // "gemini" or "tesseract"
	APIKey    string
	Workers   int
	CacheDir  string
	CacheTTL  time.Duration
	Force     bool
	DryRun    bool
	DBPath    string
}

// DefaultRunConfig returns the configuration used when no flags are given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Engine:   "gemini",
		Workers:  2,
		CacheDir: ".ldp-cache",
		CacheTTL: 7 * 24 * time.Hour,
	}
}
