// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by adapters that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// PubMedConfig holds settings for the PubMed literature adapter.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Email is the contact address NCBI requires from E-utilities callers.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// Tool names the calling application in the E-utilities tool parameter.
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// APIKey is an optional NCBI API key (raises the limit from 3 to 10 requests/s).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxResults is the default number of records per call (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=0,lte=100"`

	// IncludeAbstracts fetches abstracts with efetch so the model sees them.
	IncludeAbstracts bool `json:"include_abstracts" yaml:"include_abstracts" mapstructure:"include_abstracts"`
}

// WebSearchConfig holds settings for the DuckDuckGo web search adapter.
type WebSearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the default number of results per call (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=0,lte=50"`

	// Region is the DuckDuckGo kl region code (e.g. "us-en", "wt-wt").
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`
}

// ModelConfig holds settings for the chat-completion endpoint.
type ModelConfig struct {
	// ModelID is the hosted model identifier.
	ModelID string `json:"model_id" yaml:"model_id" mapstructure:"model_id" validate:"required"`

	// APIKey is the Hugging Face access token. Checked at first use, not at startup.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the OpenAI-compatible endpoint root.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// MaxOutputTokens bounds each completion.
	MaxOutputTokens int `json:"max_output_tokens" yaml:"max_output_tokens" mapstructure:"max_output_tokens" validate:"gt=0"`

	// Temperature is the sampling temperature.
	Temperature float32 `json:"temperature" yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxIterations caps the tool-invocation loop (default 4).
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations" validate:"gt=0"`

	// MaxRetries is the number of retries on rate limiting or endpoint errors (default 1).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`

	// Timeout bounds a single completion request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// Variant selects which tool set and presentation the agent uses.
type Variant string

const (
	// VariantPubMed binds the PubMed adapter and renders a raw article listing.
	VariantPubMed Variant = "pubmed"
	// VariantSmart binds web search and PubMed and renders only the answer.
	VariantSmart Variant = "smart"
)

// AgentConfig holds orchestrator identity and instructions.
type AgentConfig struct {
	// Name is the orchestrator name shown in logs and headings.
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`

	// Variant selects the tool set.
	Variant Variant `json:"variant" yaml:"variant" mapstructure:"variant" validate:"oneof=pubmed smart"`

	// Instructions is the system prompt sent before the user query.
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty" mapstructure:"instructions"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// ListingSize is the number of raw records shown in the pubmed variant (default 5).
	ListingSize int `json:"listing_size" yaml:"listing_size" mapstructure:"listing_size" validate:"gte=0,lte=100"`

	// ShowToolCalls prints the tool-call log under the answer.
	ShowToolCalls bool `json:"show_tool_calls" yaml:"show_tool_calls" mapstructure:"show_tool_calls"`

	// LogFile receives structured logs while the interactive UI is running.
	LogFile string `json:"log_file" yaml:"log_file" mapstructure:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Agent  AgentConfig     `json:"agent" yaml:"agent" mapstructure:"agent"`
	Model  ModelConfig     `json:"model" yaml:"model" mapstructure:"model"`
	PubMed PubMedConfig    `json:"pubmed" yaml:"pubmed" mapstructure:"pubmed"`
	Web    WebSearchConfig `json:"web" yaml:"web" mapstructure:"web"`
	UI     UIConfig        `json:"ui" yaml:"ui" mapstructure:"ui"`
}
