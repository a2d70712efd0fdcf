package types

import "time"

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// StoreBackend identifies the document/analysis store implementation.
type StoreBackend string

const (
	StoreNone   StoreBackend = "none"
	StoreSQLite StoreBackend = "sqlite"
	StoreProxy  StoreBackend = "proxy"
)

// StoreConfig holds settings for the document and analysis stores.
type StoreConfig struct {
	// Backend selects the store implementation: none, sqlite, or proxy.
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// Path is the SQLite database path for the sqlite backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// BaseURL is the proxy endpoint for the proxy backend.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey authenticates proxy requests.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the HTTP request timeout for the proxy backend.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries bounds retries on HTTP 429 from the proxy (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ParseConfig holds settings for the paper parsing stage.
type ParseConfig struct {
	AIConfig `yaml:",inline"`

	// WorkDir is the scratch directory for intermediate artifacts
	// (paper_content.md, extracted_features.json, snapshots).
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// PromptCharBudget caps how many characters of paper text are
	// interpolated into the feature extraction prompt (default 50000).
	PromptCharBudget int `json:"prompt_char_budget" yaml:"prompt_char_budget"`
}

// ClassifyConfig holds settings for the discipline classification stage.
type ClassifyConfig struct {
	AIConfig `yaml:",inline"`

	// WorkDir is the scratch directory for classification artifacts.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// StoreResults controls whether classifications are persisted to the
	// analysis store when one is configured.
	StoreResults bool `json:"store_results" yaml:"store_results"`
}

// ReviewConfig groups all stage configurations for the review pipeline.
type ReviewConfig struct {
	Parse    ParseConfig    `json:"parse" yaml:"parse"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Store    StoreConfig    `json:"store" yaml:"store"`

	// DebugPhases lists pipeline phases whose saved snapshots should be
	// reused instead of re-running the phase ("parser", "classifier").
	DebugPhases []string `json:"debug_phases,omitempty" yaml:"debug_phases,omitempty"`
}
