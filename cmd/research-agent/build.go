// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/config"
	"github.com/pdiddy/research-agent/internal/model"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// loadConfig reads the configuration for variant and applies the flags the
// user changed on cmd.
func loadConfig(cmd *cobra.Command, variant types.Variant) (config.Result, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{
		Variant:    variant,
		ConfigFile: cfgFile,
		Flags:      cmd.Flags(),
	})
}

func logLoaded(logger *slog.Logger, res config.Result) {
	logger.Info("config loaded",
		"variant", string(res.Config.Agent.Variant),
		"file", res.ConfigFile,
		"secrets", res.Secrets,
		"model", res.Config.Model.ModelID)
}

// toolsFor returns the adapters bound for the configured variant. The
// pubmed variant binds PubMed only; smart binds web search and PubMed.
func toolsFor(cfg types.AppConfig) []search.Adapter {
	pubmed := search.NewPubMedAdapter(cfg.PubMed)
	if cfg.Agent.Variant == types.VariantPubMed {
		return []search.Adapter{pubmed}
	}
	return []search.Adapter{search.NewDuckDuckGoAdapter(cfg.Web), pubmed}
}

// newSession wires adapters, the model client, and the agent for cfg.
// The pubmed variant also gets the raw listing unless withListing is false
// or the listing size is zero.
func newSession(cfg types.AppConfig, logger *slog.Logger, withListing bool) *agent.Session {
	tools := toolsFor(cfg)
	client := model.New(cfg.Model, logger)
	a := agent.New(cfg.Agent.Name, client, tools,
		agent.WithLogger(logger),
		agent.WithOptions(model.OptionsFrom(cfg.Model, cfg.Agent.Instructions)))

	s := &agent.Session{Agent: a, Variant: cfg.Agent.Variant}
	if cfg.Agent.Variant == types.VariantPubMed && withListing && cfg.UI.ListingSize > 0 {
		s.Listing = tools[0]
		s.ListingSize = cfg.UI.ListingSize
	}
	return s
}
