package types

import "time"

// HTTPConfig holds shared HTTP settings for packages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "journal-query/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for OpenAlex search.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of results per interactive page.
	// One of 20, 30, 40, 50 (default 20).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Sort is the default sort order (default "cited_by_count:desc").
	Sort string `json:"sort" yaml:"sort"`

	// Mailto is an email address sent for OpenAlex polite pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// APIKey is an optional OpenAlex API key, attached to every request
	// as a query parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ExportConfig holds settings for RIS export.
type ExportConfig struct {
	// OutputDir is the directory RIS files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Config groups all application configuration.
type Config struct {
	// JournalsPath is the location of the journal allow-list JSON file.
	JournalsPath string `json:"journals_path" yaml:"journals_path"`

	// CacheDir is the directory holding the local credential cache.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	Search SearchConfig `json:"search" yaml:"search"`
	Export ExportConfig `json:"export" yaml:"export"`
}
