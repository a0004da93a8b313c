package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/cara/internal/changelog"
	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/ariel-frischer/cara/internal/config"
	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/gitlog"
	"github.com/ariel-frischer/cara/internal/logging"
	"github.com/ariel-frischer/cara/internal/progress"
	"github.com/spf13/cobra"
)

// stdoutPath makes --output write to standard output.
const stdoutPath = "-"

// sourceFlags select where commit history comes from.
type sourceFlags struct {
	repo   string
	from   string
	strict bool
}

// generateFlags control the written document.
type generateFlags struct {
	input  string
	output string
	format string
}

var (
	source   sourceFlags
	generate generateFlags
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&source.repo, "repo", "r", ".", "Repository path to read history from")
	cmd.PersistentFlags().StringVar(&source.from, "from", "", "Read history from an export file instead of a repository")
	cmd.PersistentFlags().BoolVar(&source.strict, "strict", false, "Fail when commit history is missing or unreadable")
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generate.input, "input", "i", "", "Existing changelog whose older sections are kept")
	cmd.Flags().StringVarP(&generate.output, "output", "o", "CHANGELOG.md", "Output file (- for stdout)")
	cmd.Flags().StringVar(&generate.format, "format", "", "Output format: markdown or yaml (overrides OUTPUT_FORMAT)")
}

// generateRequest is everything one generate run needs.
type generateRequest struct {
	ConfigPath     string
	ConfigExplicit bool
	Source         sourceFlags
	Input          string
	Output         string
	Format         string
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := generateRequest{
		ConfigPath:     globals.config,
		ConfigExplicit: cmd.Flags().Changed("config"),
		Source:         source,
		Input:          generate.input,
		Output:         generate.output,
		Format:         generate.format,
	}
	return generateChangelog(cmd.Context(), req, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// loadSettings loads configuration and applies CLI overrides.
func loadSettings(path string, explicit bool, format string) (*config.Config, *config.Settings, error) {
	cfg, err := config.Load(config.LoadOptions{Path: path, Explicit: explicit})
	if err != nil {
		return nil, nil, err
	}
	if cfg.File() == "" {
		logging.Infof("no config file at %s, using defaults", path)
	}

	if format != "" {
		if err := cfg.Set(config.KeyOutputFormat, format); err != nil {
			return nil, nil, clierrors.InvalidOutputFormat(format)
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, nil, err
	}
	for _, tok := range settings.UnknownFields {
		logging.Warnf("ignoring unknown %s token %q", config.KeyOutputEntries, tok)
	}
	return cfg, settings, nil
}

// openSource returns the history source selected by the flags. Missing
// history yields an empty source with a warning unless flags.strict is set.
func openSource(flags sourceFlags, settings *config.Settings) (gitlog.Source, error) {
	if flags.from != "" {
		if _, err := os.Stat(flags.from); err != nil {
			cliErr := clierrors.WrapWithMessage(err, clierrors.Prerequisite,
				"cannot read history export", "Check the --from path")
			return missingHistory(flags, cliErr)
		}
		return gitlog.NewExport(flags.from), nil
	}

	repo, err := gitlog.Open(flags.repo, gitlog.Options{
		DateFormat: settings.DateFormat,
		MaxCommits: settings.MaxCommits,
	})
	if err != nil {
		return missingHistory(flags, clierrors.NotARepository(flags.repo, err))
	}
	return repo, nil
}

func missingHistory(flags sourceFlags, err *clierrors.CLIError) (gitlog.Source, error) {
	if flags.strict {
		return nil, err
	}
	logging.Warnf("%s; writing a changelog without entries", err.Message)
	return gitlog.Empty{}, nil
}

// readRecords reads history with a spinner on interactive terminals.
// Read failures yield no records and a warning unless strict is set.
func readRecords(ctx context.Context, src gitlog.Source, strict bool, stderr io.Writer) ([]commit.Record, error) {
	caps := progress.DetectTerminalCapabilities()
	if logging.IsDebug() {
		caps.IsTTY = false
	}
	var sp *progress.Spinner
	if caps.IsTTY {
		sp = progress.NewSpinner(stderr, caps)
		sp.Start("Reading commit history")
	}

	records, err := src.Records(ctx)
	if err != nil {
		if sp != nil {
			sp.Fail("Reading commit history failed")
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if strict {
			return nil, clierrors.HistoryReadFailed(err)
		}
		logging.WithError(err).Warn("reading commit history failed; writing a changelog without entries")
		return nil, nil
	}

	if export, ok := src.(*gitlog.Export); ok && export.Skipped() > 0 {
		logging.Warnf("skipped %d malformed lines in %s", export.Skipped(), export.Path)
	}
	if sp != nil {
		sp.Success(fmt.Sprintf("Read %d commits", len(records)))
	}
	return records, nil
}

// buildDocument runs the pipeline and renders the configured format.
func buildDocument(records []commit.Record, settings *config.Settings, input string) (string, *changelog.Result, error) {
	res, err := changelog.Build(records, settings.Options())
	if err != nil {
		return "", nil, err
	}
	logging.WithFields(map[string]interface{}{
		"read":     res.Input,
		"unique":   res.Unique,
		"kept":     res.Kept,
		"sections": len(res.Buckets),
	}).Info("built changelog")

	if settings.OutputFormat == config.FormatYAML {
		doc := changelog.NewDocument(res.Buckets, settings.Render)
		if input != "" {
			merged, err := changelog.MergeDocumentFile(doc, input)
			if err != nil {
				return "", nil, mergeError(err)
			}
			doc = merged
		}
		out, err := doc.YAML()
		return out, res, err
	}

	doc := changelog.RenderString(res.Buckets, settings.Render)
	if input != "" {
		merged, err := changelog.MergeFile(doc, input)
		if err != nil {
			return "", nil, mergeError(err)
		}
		doc = merged
	}
	return doc, res, nil
}

func mergeError(err error) error {
	return clierrors.WrapWithMessage(err, clierrors.Prerequisite,
		"cannot merge input changelog", "Check the --input path")
}

// generateChangelog runs one full generate invocation.
func generateChangelog(ctx context.Context, req generateRequest, stdout, stderr io.Writer) error {
	_, settings, err := loadSettings(req.ConfigPath, req.ConfigExplicit, req.Format)
	if err != nil {
		return err
	}

	src, err := openSource(req.Source, settings)
	if err != nil {
		return err
	}

	records, err := readRecords(ctx, src, req.Source.strict, stderr)
	if err != nil {
		return err
	}

	doc, res, err := buildDocument(records, settings, req.Input)
	if err != nil {
		return err
	}

	if req.Output == stdoutPath {
		_, err := io.WriteString(stdout, doc)
		return err
	}

	if err := changelog.WriteFile(req.Output, doc); err != nil {
		return clierrors.FileNotWritable(req.Output, err)
	}
	logging.Infof("wrote %s (%d of %d commits in %d sections)", req.Output, res.Kept, res.Input, len(res.Buckets))
	return nil
}
