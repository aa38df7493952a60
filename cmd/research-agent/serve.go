// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	rlog "github.com/pdiddy/research-agent/internal/log"
	"github.com/pdiddy/research-agent/internal/mcpserver"
	"github.com/pdiddy/research-agent/pkg/types"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the search tools over the Model Context Protocol on stdio",
	Long: `serve-mcp exposes search_pubmed and web_search as MCP tools on stdin and
stdout so another agent can call them. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig(cmd, types.VariantSmart)
		if err != nil {
			return err
		}
		logger := rlog.New(res.Config.UI.LogLevel, cmd.ErrOrStderr())
		logLoaded(logger, res)

		server := mcpserver.New(toolsFor(res.Config), version, logger)
		logger.Info("serving MCP on stdio")
		return mcpserver.Run(cmd.Context(), server)
	},
}

func init() {
	serveMCPCmd.Flags().Duration("timeout", 0, "HTTP request timeout")
	serveMCPCmd.Flags().Int("max-results", 0, "default records per tool call (default 5)")
	serveMCPCmd.Flags().String("email", "", "contact email sent to NCBI")
	serveMCPCmd.Flags().Bool("abstracts", false, "fetch PubMed abstracts")

	rootCmd.AddCommand(serveMCPCmd)
}
