// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/config"
	rlog "github.com/pdiddy/research-agent/internal/log"
	"github.com/pdiddy/research-agent/internal/render"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/internal/ui"
	"github.com/pdiddy/research-agent/pkg/types"
)

var pubmedCmd = &cobra.Command{
	Use:   "pubmed",
	Short: "Answer biomedical questions from PubMed and list the matching articles",
	Long: `pubmed runs the PubMedAI agent: the model searches PubMed, summarizes what
it found, and the matching articles are listed under the summary with links
to PubMed and, where available, PubMed Central full text.

PubMed requires a contact email (EMAIL or --email) and the model endpoint
requires a Hugging Face token (HUGGINGFACEHUB_API_TOKEN).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVariant(cmd, types.VariantPubMed)
	},
}

var smartCmd = &cobra.Command{
	Use:   "smart",
	Short: "Answer medical or general questions with web search and PubMed",
	Long: `smart runs the SmartMultiAgent: the model picks web search for general
questions and PubMed for biomedical ones, then shows its final answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVariant(cmd, types.VariantSmart)
	},
}

func init() {
	for _, c := range []*cobra.Command{pubmedCmd, smartCmd} {
		addModelFlags(c)
		c.Flags().String("query", "", "run one query and print the result instead of starting the UI")
		c.Flags().String("query-file", "", "YAML file with a list of queries to run one after another")
		c.Flags().String("format", render.FormatMarkdown, "output format with --query: "+strings.Join(render.Formats, ", "))
		c.Flags().Bool("show-tool-calls", true, "show the tool-call log under the answer")
		c.Flags().String("log-file", "", "log file while the UI runs (default in the user cache dir)")
		rootCmd.AddCommand(c)
	}
	pubmedCmd.Flags().Int("listing-size", 5, "number of raw articles listed under the summary (0 disables)")
	pubmedCmd.Flags().Bool("no-listing", false, "skip the raw article listing")
}

// addModelFlags registers the flags shared by every command that calls the
// model or the adapters.
func addModelFlags(c *cobra.Command) {
	c.Flags().String("model", "", "hosted model id (default meta-llama/Meta-Llama-3-8B-Instruct)")
	c.Flags().String("base-url", "", "OpenAI-compatible endpoint root")
	c.Flags().Int("max-tokens", 0, "maximum output tokens per completion")
	c.Flags().Float32("temperature", 0, "sampling temperature")
	c.Flags().Int("max-iterations", 0, "maximum tool-calling rounds per query (default 4)")
	c.Flags().Duration("timeout", 0, "timeout for each model and search request")
	c.Flags().Int("max-results", 0, "maximum records per search tool call (default 5)")
	c.Flags().String("email", "", "contact email sent to NCBI")
	c.Flags().Bool("abstracts", false, "fetch PubMed abstracts for the model")
	c.Flags().String("region", "", "web search region code (e.g. us-en)")
}

func runVariant(cmd *cobra.Command, variant types.Variant) error {
	res, err := loadConfig(cmd, variant)
	if err != nil {
		return err
	}
	cfg := res.Config

	query, _ := cmd.Flags().GetString("query")
	queryFile, _ := cmd.Flags().GetString("query-file")
	if query == "" && queryFile == "" {
		return runInteractive(cmd, cfg, res)
	}

	format, _ := cmd.Flags().GetString("format")
	if !slices.Contains(render.Formats, format) {
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(render.Formats, ", "))
	}

	queries := []string{query}
	if queryFile != "" {
		qf, err := search.ReadQueryFile(queryFile)
		if err != nil {
			return err
		}
		queries = qf.Queries
		if qf.MaxResults > 0 {
			cfg.PubMed.MaxResults = qf.MaxResults
			cfg.Web.MaxResults = qf.MaxResults
		}
	}

	logger := rlog.New(cfg.UI.LogLevel, cmd.ErrOrStderr())
	logLoaded(logger, res)

	session := newSession(cfg, logger, listingEnabled(cmd))
	return runQueries(cmd, session, queries, format, render.Options{ShowToolCalls: cfg.UI.ShowToolCalls})
}

// listingEnabled reports whether the raw listing should run. Only the pubmed
// command defines --no-listing.
func listingEnabled(cmd *cobra.Command) bool {
	noListing, _ := cmd.Flags().GetBool("no-listing")
	return !noListing
}

// runQueries runs each query in turn and writes one report per query. It
// fails when any query failed, after all of them have run.
func runQueries(cmd *cobra.Command, session *agent.Session, queries []string, format string, opts render.Options) error {
	out := cmd.OutOrStdout()
	failed := 0
	for i, q := range queries {
		if i > 0 && format == render.FormatMarkdown {
			fmt.Fprint(out, "\n")
		}
		report := session.Run(cmd.Context(), q)
		if report.Err != nil {
			failed++
		}
		if err := writeReport(out, format, report, opts); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(queries))
	}
	return nil
}

func writeReport(w io.Writer, format string, report render.Report, opts render.Options) error {
	if format == render.FormatMarkdown && report.Query != "" {
		fmt.Fprintf(w, "# %s\n\n", report.Query)
	}
	return render.Encode(w, format, report, opts)
}

// runInteractive starts the terminal UI. Logs go to a rotating file so they
// do not corrupt the screen.
func runInteractive(cmd *cobra.Command, cfg types.AppConfig, res config.Result) error {
	path := cfg.UI.LogFile
	if path == "" {
		path = rlog.DefaultFile()
	}
	logger, closer, err := rlog.NewFile(cfg.UI.LogLevel, path)
	if err != nil {
		return err
	}
	defer closer.Close()
	logLoaded(logger, res)

	session := newSession(cfg, logger, listingEnabled(cmd))
	m := ui.New(cmd.Context(), session, cfg.Agent.Variant, render.Options{ShowToolCalls: cfg.UI.ShowToolCalls})
	return ui.Run(cmd.Context(), m)
}
