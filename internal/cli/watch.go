package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ariel-frischer/cara/internal/changelog"
	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/gitlog"
	"github.com/ariel-frischer/cara/internal/logging"
	"github.com/ariel-frischer/cara/internal/watch"
	"github.com/spf13/cobra"
)

var watchDebounceFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the changelog whenever history changes",
	Long: `Generate the changelog, then watch the repository and regenerate it after
each commit, checkout or ref update. Press Ctrl+C to stop.`,
	Example: `  # Keep CHANGELOG.md current while you work
  cara watch

  # Group by week and wait longer between bursts of ref updates
  cara watch -c weekly.conf --debounce 2s`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := generateRequest{
			ConfigPath:     globals.config,
			ConfigExplicit: cmd.Flags().Changed("config"),
			Source:         source,
			Input:          generate.input,
			Output:         generate.output,
			Format:         generate.format,
		}
		return watchChangelog(cmd.Context(), req, watchDebounceFlag, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	watchCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(watchCmd)

	addGenerateFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
}

// watchChangelog generates once and then on every relevant repository change.
func watchChangelog(ctx context.Context, req generateRequest, debounce time.Duration, stdout, stderr io.Writer) error {
	if req.Source.from != "" {
		return clierrors.NewArgumentError("watch reads a repository; --from cannot be used")
	}

	repo, err := gitlog.Open(req.Source.repo, gitlog.Options{})
	if err != nil {
		return clierrors.NotARepository(req.Source.repo, err)
	}
	gitDir, err := watch.GitDir(repo.Root())
	if err != nil {
		return err
	}

	if err := generateChangelog(ctx, req, stdout, stderr); err != nil {
		return err
	}

	w, err := watch.New(gitDir, debounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	w.OnError = func(err error) {
		logging.WithError(err).Error("regenerating changelog")
	}

	fmt.Fprintf(stderr, "Watching %s for changes (Ctrl+C to stop)\n", gitDir)
	return w.Run(ctx, func(ctx context.Context) error {
		if err := generateChangelog(ctx, req, stdout, stderr); err != nil {
			return err
		}
		reportHead(ctx, req.Source.repo, stderr)
		return nil
	})
}

// reportHead prints a one-line summary of the newest commit.
func reportHead(ctx context.Context, path string, w io.Writer) {
	repo, err := gitlog.Open(path, gitlog.Options{MaxCommits: 1})
	if err != nil {
		return
	}
	records, err := repo.Records(ctx)
	if err != nil || len(records) == 0 {
		return
	}
	fmt.Fprintf(w, "Regenerated after %s\n", changelog.FormatEntrySummary(records[0], changelog.FormatOptions{}))
}
