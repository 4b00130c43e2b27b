// Package types defines configuration shared by the arxivkit command and
// its internal packages.
package types

import "time"

// HTTPConfig holds settings for requests to the arXiv API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxivkit/0.1"). arXiv asks clients to identify themselves.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QueryConfig holds defaults applied to queries built by the CLI.
type QueryConfig struct {
	// BaseURL overrides the API endpoint (default https://export.arxiv.org/api/query).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxResults is the page size when none is given (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SortBy is one of relevance, lastUpdatedDate or submittedDate.
	SortBy string `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`

	// SortOrder is ascending or descending.
	SortOrder string `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
}

// OutputFormat selects how decoded records are printed.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputCSL   OutputFormat = "csl"
)

// OutputConfig holds settings for printing results.
type OutputConfig struct {
	// Format selects table, json or csl output.
	Format OutputFormat `json:"format" yaml:"format"`
}

// Config groups every section of arxivkit.yaml.
type Config struct {
	HTTP   HTTPConfig   `json:"http" yaml:"http"`
	Query  QueryConfig  `json:"query" yaml:"query"`
	Output OutputConfig `json:"output" yaml:"output"`
}
