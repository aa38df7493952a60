// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"time"

	"github.com/pdiddy/research-agent/internal/model"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	pubmedAgentName = "PubMedAI"
	smartAgentName  = "SmartMultiAgent"

	defaultUserAgent = "research-agent/0.1"
	defaultHTTPTime  = 30 * time.Second
)

const pubmedInstructions = `You are PubMedAI, a biomedical research assistant.
Use the search_pubmed tool to find relevant articles before answering.
Answer in Markdown. Cite the PMID of every article you rely on, and say so plainly when the literature does not answer the question.`

const smartInstructions = `You are SmartMultiAgent, a research assistant with two tools.
Use search_pubmed for biomedical, clinical, and life-science questions.
Use web_search for news, current events, and general knowledge.
Answer in Markdown and cite the sources you used.`

// Defaults returns the built-in configuration for a variant.
func Defaults(v types.Variant) types.AppConfig {
	cfg := types.AppConfig{
		Model: types.ModelConfig{
			ModelID:       model.DefaultModelID,
			BaseURL:       model.DefaultBaseURL,
			MaxIterations: model.DefaultMaxIterations,
			MaxRetries:    1,
			Timeout:       model.DefaultTimeout,
		},
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{Timeout: defaultHTTPTime, UserAgent: defaultUserAgent},
			Tool:       "research-agent",
			MaxResults: search.DefaultMaxResults,
		},
		Web: types.WebSearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: defaultHTTPTime},
			MaxResults: search.DefaultMaxResults,
			Region:     "wt-wt",
		},
		UI: types.UIConfig{
			ListingSize:   search.DefaultMaxResults,
			ShowToolCalls: true,
			LogLevel:      "info",
		},
	}

	switch v {
	case types.VariantSmart:
		cfg.Agent = types.AgentConfig{Name: smartAgentName, Variant: types.VariantSmart, Instructions: smartInstructions}
		cfg.Model.MaxOutputTokens = 2048
		cfg.Model.Temperature = 0.3
		cfg.UI.ListingSize = 0
	default:
		cfg.Agent = types.AgentConfig{Name: pubmedAgentName, Variant: types.VariantPubMed, Instructions: pubmedInstructions}
		cfg.Model.MaxOutputTokens = 1000
		cfg.Model.Temperature = 0.2
	}
	return cfg
}

// setDefaults registers every key with viper so AutomaticEnv can see it.
func setDefaults(set func(key string, value any), cfg types.AppConfig) {
	set("agent.name", cfg.Agent.Name)
	set("agent.instructions", cfg.Agent.Instructions)

	set("model.model_id", cfg.Model.ModelID)
	set("model.api_key", cfg.Model.APIKey)
	set("model.base_url", cfg.Model.BaseURL)
	set("model.max_output_tokens", cfg.Model.MaxOutputTokens)
	set("model.temperature", cfg.Model.Temperature)
	set("model.max_iterations", cfg.Model.MaxIterations)
	set("model.max_retries", cfg.Model.MaxRetries)
	set("model.timeout", cfg.Model.Timeout)

	set("pubmed.timeout", cfg.PubMed.Timeout)
	set("pubmed.user_agent", cfg.PubMed.UserAgent)
	set("pubmed.email", cfg.PubMed.Email)
	set("pubmed.tool", cfg.PubMed.Tool)
	set("pubmed.api_key", cfg.PubMed.APIKey)
	set("pubmed.max_results", cfg.PubMed.MaxResults)
	set("pubmed.include_abstracts", cfg.PubMed.IncludeAbstracts)

	set("web.timeout", cfg.Web.Timeout)
	set("web.user_agent", cfg.Web.UserAgent)
	set("web.max_results", cfg.Web.MaxResults)
	set("web.region", cfg.Web.Region)

	set("ui.listing_size", cfg.UI.ListingSize)
	set("ui.show_tool_calls", cfg.UI.ShowToolCalls)
	set("ui.log_file", cfg.UI.LogFile)
	set("ui.log_level", cfg.UI.LogLevel)
}
