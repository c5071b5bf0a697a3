// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/vendor-assess/internal/assessor"
	"github.com/bonial-oss/vendor-assess/internal/config"
	"github.com/bonial-oss/vendor-assess/internal/input"
	"github.com/bonial-oss/vendor-assess/internal/output"
	"github.com/bonial-oss/vendor-assess/internal/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Options holds all CLI flag values.
type Options struct {
	Vendor        string
	Questionnaire string
	Documents     []string
	Metadata      string
	WebResults    string
	Tickets       string

	NoWebSearch      bool
	NoJira           bool
	JiraProject      string
	JiraCreateTicket bool
	NoEmbeddings     bool
	EmbeddingModel   string
	Threshold        float64
	Workers          int

	Format          string
	Output          string
	SortBy          string
	FailOnRisk      string
	SkipCacheUpdate bool
	CacheDir        string
	RedisAddr       string

	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// NewRootCommand creates the root cobra command with all flags.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "vendor-assess",
		Short:   "Answer a vendor security questionnaire from the vendor's own documentation",
		Version: Version,
		Long: `vendor-assess reads a security questionnaire and the documentation a vendor
supplied (PDF, Excel or pre-parsed JSON), finds the evidence that answers each
question, and produces a risk assessment with a STRIDE threat model.

Public web search, Jira ticket history and semantic embeddings are used when
credentials are configured and can each be disabled.

Usage:
  vendor-assess --vendor Acme --questionnaire q.xlsx --doc soc2.pdf --format markdown
  vendor-assess --vendor Acme --questionnaire q.xlsx --doc soc2.pdf --format excel -o completed.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Vendor, "vendor", "", "Vendor name (defaults to the metadata vendor_name)")
	flags.StringVar(&opts.Questionnaire, "questionnaire", "", "Questionnaire file: xlsx, csv, yaml or json")
	flags.StringArrayVar(&opts.Documents, "doc", nil, "Vendor document (pdf, xlsx or parsed json); repeatable. PDF tables are read as page text, pass parsed json to keep them")
	flags.StringVar(&opts.Metadata, "metadata", "", "Vendor metadata YAML (services, data_stored, integrations)")
	flags.StringVar(&opts.WebResults, "web-results", "", "Use saved web search results instead of searching")
	flags.StringVar(&opts.Tickets, "tickets", "", "Use saved Jira tickets (JSON) instead of querying Jira")
	flags.BoolVar(&opts.NoWebSearch, "no-web-search", false, "Disable public web search")
	flags.BoolVar(&opts.NoJira, "no-jira", false, "Disable Jira ticket lookup")
	flags.StringVar(&opts.JiraProject, "jira-project", "", "Restrict ticket lookup to a Jira project key")
	flags.BoolVar(&opts.JiraCreateTicket, "jira-create-ticket", false, "Create a Jira ticket summarizing the assessment")
	flags.BoolVar(&opts.NoEmbeddings, "no-embeddings", false, "Use lexical similarity only")
	flags.StringVar(&opts.EmbeddingModel, "embedding-model", "", "Gemini embedding model")
	flags.Float64Var(&opts.Threshold, "threshold", 0, "Minimum similarity for evidence to count, in (0, 1]")
	flags.IntVar(&opts.Workers, "workers", 0, "Parallel question mappers (0 = number of CPUs)")
	flags.StringVar(&opts.Format, "format", "json", "Output format: json, table, markdown, excel")
	flags.StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")
	flags.StringVar(&opts.SortBy, "sort-by", "", "Sort table by: confidence, score, id")
	flags.StringVar(&opts.FailOnRisk, "fail-on-risk", "", "Exit code 1 if overall risk is at least: low, medium, high, critical")
	flags.BoolVar(&opts.SkipCacheUpdate, "skip-cache-update", false, "Use cached search results without refreshing")
	flags.StringVar(&opts.CacheDir, "cache-dir", "", "Override cache directory")
	flags.StringVar(&opts.RedisAddr, "redis-addr", "", "Cache search results in Redis at host:port")
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.vendor-assess/config.yaml)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log format: text, json")

	return cmd
}

// run orchestrates loading, assessment and rendering.
func run(ctx context.Context, opts *Options, changed func(string) bool, stdout io.Writer) error {
	config.LoadDotEnv()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return usageError("%v", err)
	}
	applyFlags(cfg, opts, changed)
	if err := cfg.Validate(); err != nil {
		return usageError("%v", err)
	}
	logger := setupLogger(os.Stderr, cfg.Log.Format, cfg.Log.Level)

	if err := validateOptions(opts); err != nil {
		return err
	}
	var failOn types.RiskLevel
	if opts.FailOnRisk != "" {
		if failOn, err = types.ParseRiskLevel(opts.FailOnRisk); err != nil {
			return usageError("%v", err)
		}
	}

	in, err := loadInput(opts)
	if err != nil {
		return err
	}
	if in.VendorName == "" {
		return usageError("--vendor is required when the metadata has no vendor_name")
	}

	deps, err := setupCollaborators(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	res, err := assessor.New(deps.options(cfg, logger)...).Assess(ctx, in, assessor.Config{
		Threshold:  cfg.Threshold,
		Workers:    cfg.Workers,
		FailOnRisk: failOn,
	})
	if err != nil {
		return fmt.Errorf("assessing vendor: %w", err)
	}
	logger.Info("assessment complete",
		"vendor", in.VendorName,
		"questions", len(res.Mappings),
		"evidence", res.EvidenceCount,
		"overall_risk", res.Assessment.OverallRisk,
		"risk_score", res.Assessment.RiskScore,
	)

	if err := writeResult(res, opts, stdout); err != nil {
		return err
	}

	if opts.JiraCreateTicket {
		createTicket(ctx, deps, cfg, in.VendorName, res, logger)
	}

	if res.PolicyViolation {
		return &ExitError{
			Code:    1,
			Message: fmt.Sprintf("policy violation: overall risk %s meets --fail-on-risk %s", res.Assessment.OverallRisk, failOn),
		}
	}
	return nil
}

// applyFlags overrides configuration with flags the user set explicitly.
func applyFlags(cfg *config.Config, opts *Options, changed func(string) bool) {
	if changed("threshold") {
		cfg.Threshold = opts.Threshold
	}
	if changed("workers") {
		cfg.Workers = opts.Workers
	}
	if changed("embedding-model") {
		cfg.Gemini.Model = opts.EmbeddingModel
	}
	if changed("jira-project") {
		cfg.Jira.Project = opts.JiraProject
	}
	if changed("cache-dir") {
		cfg.Cache.Dir = opts.CacheDir
	}
	if changed("redis-addr") {
		cfg.Redis.Addr = opts.RedisAddr
	}
	if changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = opts.LogFormat
	}
}

func validateOptions(opts *Options) error {
	switch opts.Format {
	case "json", "table", "markdown":
	case "excel":
		if opts.Output == "" || opts.Output == "-" {
			return &ExitError{Code: 3, Message: "--format excel requires --output"}
		}
	default:
		return usageError("unsupported output format: %s", opts.Format)
	}
	switch opts.SortBy {
	case "", "confidence", "score", "id":
	default:
		return usageError("unsupported sort key: %s", opts.SortBy)
	}
	if opts.Questionnaire == "" {
		return usageError("--questionnaire is required")
	}
	return nil
}

// loadInput reads every file named on the command line. Any unreadable
// file is a usage error; unparseable documents are kept with an error.
func loadInput(opts *Options) (assessor.Input, error) {
	in := assessor.Input{VendorName: opts.Vendor}

	questions, err := input.LoadQuestionnaire(opts.Questionnaire)
	if err != nil {
		return in, usageError("%v", err)
	}
	if len(questions) == 0 {
		return in, usageError("no questions found in %s", opts.Questionnaire)
	}
	in.Questions = questions

	if in.Documents, err = input.LoadDocuments(opts.Documents); err != nil {
		return in, usageError("%v", err)
	}

	if opts.Metadata != "" {
		if in.Metadata, err = input.LoadMetadata(opts.Metadata); err != nil {
			return in, usageError("%v", err)
		}
		if in.VendorName == "" {
			in.VendorName = in.Metadata.VendorName
		}
	}

	if opts.WebResults != "" {
		web, err := input.LoadWebResults(opts.WebResults)
		if err != nil {
			return in, usageError("%v", err)
		}
		in.Web = &web
	} else if opts.NoWebSearch {
		in.Web = &types.WebSearchResult{Controls: []types.WebControl{}, Incidents: []types.WebIncident{}}
	}

	if opts.Tickets != "" {
		if in.Tickets, err = input.LoadTickets(opts.Tickets); err != nil {
			return in, usageError("%v", err)
		}
	}
	return in, nil
}

func writeResult(res *assessor.Result, opts *Options, stdout io.Writer) error {
	w := stdout
	if opts.Output != "" && opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case "json":
		return output.WriteJSON(w, res)
	case "table":
		return output.WriteTable(w, res, output.TableConfig{
			SortBy:     opts.SortBy,
			IsTerminal: output.IsOutputToTerminal(w),
		})
	case "markdown":
		return output.WriteMarkdown(w, res)
	case "excel":
		return output.WriteExcel(w, res.Mappings)
	}
	return usageError("unsupported output format: %s", opts.Format)
}

// createTicket files the assessment in Jira. Failure is logged, not fatal:
// the report has already been written.
func createTicket(ctx context.Context, deps *collaborators, cfg *config.Config, vendor string, res *assessor.Result, logger *slog.Logger) {
	if deps.jira == nil {
		logger.Warn("cannot create jira ticket, jira is disabled")
		return
	}
	if cfg.Jira.Project == "" {
		logger.Warn("cannot create jira ticket without --jira-project")
		return
	}
	key, err := deps.jira.CreateAssessmentTicket(ctx, cfg.Jira.Project, vendor, res.Assessment, &res.Overview)
	if err != nil {
		logger.Warn("creating jira ticket failed", "error", err)
		return
	}
	logger.Info("created jira ticket", "key", key)
}
