package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ariel-frischer/cara/internal/changelog"
	"github.com/ariel-frischer/cara/internal/commit"
	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/gitlog"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	logExportFlag string
	logPlainFlag  bool
	logUniqueFlag bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the commits cara reads from history",
	Long: `List the commits cara reads from history, before filtering and grouping.

Use --export to save them in the pipe separated format accepted by --from,
so a changelog can be generated later without the repository.`,
	Example: `  # Show commits as a table
  cara log

  # One line per commit
  cara log --plain

  # Export history for later use
  cara log --export history.txt
  cara --from history.txt`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLog(cmd, args)
	},
}

func init() {
	logCmd.GroupID = GroupInspect
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVar(&logExportFlag, "export", "", "Write commits to this file in export format (- for stdout)")
	logCmd.Flags().BoolVar(&logPlainFlag, "plain", false, "One line per commit instead of a table")
	logCmd.Flags().BoolVar(&logUniqueFlag, "unique", false, "Drop duplicate commits first")
}

func runLog(cmd *cobra.Command, args []string) error {
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
	if logUniqueFlag {
		records = commit.Deduplicate(records)
	}

	switch {
	case logExportFlag == stdoutPath:
		return gitlog.WriteExport(cmd.OutOrStdout(), records)
	case logExportFlag != "":
		return exportRecords(logExportFlag, records)
	case logPlainFlag:
		return printEntries(cmd.OutOrStdout(), records)
	default:
		return printEntryTable(cmd.OutOrStdout(), records)
	}
}

func exportRecords(path string, records []commit.Record) error {
	var buf bytes.Buffer
	if err := gitlog.WriteExport(&buf, records); err != nil {
		return err
	}
	if err := changelog.WriteFile(path, buf.String()); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	return nil
}

// printEntries writes one "date | author | short - message" line per commit.
func printEntries(w io.Writer, records []commit.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s | %s | %s - %s\n", r.DisplayDate, r.Author, r.ShortHash(), r.Message); err != nil {
			return err
		}
	}
	return nil
}

// printEntryTable renders commits as a table.
func printEntryTable(w io.Writer, records []commit.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No commits found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Hash", "Author", "Message"})

	data := make([][]string, 0, len(records))
	for _, r := range records {
		data = append(data, []string{
			r.DisplayDate,
			r.ShortHash(),
			r.Author,
			changelog.TruncateText(r.Message, 60),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return table.Render()
}
