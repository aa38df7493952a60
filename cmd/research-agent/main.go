// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI.
// The pubmed and smart subcommands answer research questions with a hosted
// model and search tools; search and serve-mcp expose the tools directly.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Answer research questions with an LLM and PubMed or web search",
	Long: `research-agent sends a question to a hosted language model that can call
search tools (PubMed and web search) and shows the model's answer.

Two variants are available as subcommands. pubmed answers from the biomedical
literature and lists the matching articles under the answer. smart lets the
model choose between web search and PubMed and shows only the answer.

Without --query both start an interactive terminal UI. Credentials come from
the environment (HUGGINGFACEHUB_API_TOKEN, EMAIL), a .env file, or .secrets/.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/research-agent.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
