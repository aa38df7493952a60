// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rlog "github.com/pdiddy/research-agent/internal/log"
	"github.com/pdiddy/research-agent/internal/render"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	searchFormatTable    = "table"
	searchFormatJSON     = "json"
	searchFormatCSL      = "csl"
	searchFormatMarkdown = "markdown"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query a search tool directly, without the model",
	Long: `Search sends the query straight to one search tool and prints the records
it returns. Use it to check credentials and connectivity, or to export PubMed
results as CSL YAML for a reference manager.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("tool", "pubmed", "search tool: pubmed or web")
	searchCmd.Flags().String("format", searchFormatTable, "output format: table, json, csl, markdown")
	searchCmd.Flags().Int("max-results", 0, "maximum number of records (default 5)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout")
	searchCmd.Flags().String("email", "", "contact email sent to NCBI")
	searchCmd.Flags().Bool("abstracts", false, "fetch PubMed abstracts")
	searchCmd.Flags().String("region", "", "web search region code (e.g. us-en)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return types.Errorf(types.KindEmptyQuery, "search", "provide a query")
	}

	res, err := loadConfig(cmd, types.VariantSmart)
	if err != nil {
		return err
	}
	cfg := res.Config
	logger := rlog.New(cfg.UI.LogLevel, cmd.ErrOrStderr())
	logLoaded(logger, res)

	tool, _ := cmd.Flags().GetString("tool")
	var adapter search.Adapter
	switch tool {
	case "pubmed", "search_pubmed":
		adapter = search.NewPubMedAdapter(cfg.PubMed)
	case "web", "web_search", "duckduckgo":
		adapter = search.NewDuckDuckGoAdapter(cfg.Web)
	default:
		return fmt.Errorf("unknown tool %q (want pubmed or web)", tool)
	}

	records, err := adapter.Search(cmd.Context(), query, 0)
	if err != nil {
		logger.Error("search failed", "tool", adapter.Name(), "kind", string(types.KindOf(err)), "error", err)
		return errors.New(types.UserMessage(err))
	}
	logger.Info("search finished", "tool", adapter.Name(), "results", len(records))

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case searchFormatTable:
		search.FormatTable(records, out)
		return nil
	case searchFormatJSON:
		return search.FormatJSON(records, out)
	case searchFormatCSL:
		return search.FormatCSL(records, out)
	case searchFormatMarkdown:
		_, err := fmt.Fprint(out, render.Listing(records))
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, json, csl, or markdown)", format)
	}
}
