package cli

import (
	"fmt"

	"github.com/ariel-frischer/cara/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	previewPlainFlag bool
	previewWidthFlag int
	previewLastFlag  int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the changelog in the terminal without writing it",
	Long: `Show the changelog that would be generated, formatted for the terminal.

Output uses the same configuration as the root command. Long entries are
wrapped to the terminal width.

Examples:
  cara preview              # Show all sections
  cara preview --last 3     # Show the 3 most recent sections
  cara preview --plain      # Plain output (no colors)`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd, args)
	},
}

func init() {
	previewCmd.GroupID = GroupInspect
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Plain text output (no colors)")
	previewCmd.Flags().IntVar(&previewWidthFlag, "width", 0, "Wrap width (0 = terminal width)")
	previewCmd.Flags().IntVar(&previewLastFlag, "last", 0, "Number of sections to show (0 = all)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings(globals.config, cmd.Flags().Changed("config"), "")
	if err != nil {
		return err
	}

	src, err := openSource(source, settings)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd.Context(), src, source.strict, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, err := changelog.Build(records, settings.Options())
	if err != nil {
		return err
	}

	buckets := res.Buckets
	if previewLastFlag > 0 && previewLastFlag < len(buckets) {
		buckets = buckets[:previewLastFlag]
	}

	opts := changelog.FormatOptions{Plain: previewPlainFlag, MaxWidth: previewWidthFlag}
	if err := changelog.FormatTerminal(buckets, settings.Render, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting changelog: %w", err)
	}

	if len(buckets) < len(res.Buckets) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d sections shown. Use --last %d to see all)\n",
			len(buckets), len(res.Buckets), len(res.Buckets))
	}
	return nil
}
