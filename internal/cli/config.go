package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/cara/internal/config"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	configTemplateFlag bool
	configKeysFlag     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective cara configuration",
	Long: `Show the effective cara configuration and where each value came from.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CARA_*)
  2. Config file (--config, default cara.conf)
  3. Built-in defaults

Config files ending in .yaml, .yml or .json are parsed as such. Any other
file uses KEY=VALUE lines.`,
	Example: `  # Show current configuration
  cara config

  # Write a commented starter config
  cara config --template > cara.conf

  # List every supported key
  cara config --keys`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case configTemplateFlag:
			_, err := fmt.Fprint(out, config.GetDefaultConfigTemplate())
			return err
		case configKeysFlag:
			return printConfigKeys(out)
		}

		cfg, _, err := loadSettings(globals.config, cmd.Flags().Changed("config"), "")
		if err != nil {
			return err
		}
		return printConfig(out, cfg)
	},
}

func init() {
	configCmd.GroupID = GroupInspect
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configTemplateFlag, "template", false, "Print a commented config template")
	configCmd.Flags().BoolVar(&configKeysFlag, "keys", false, "List supported configuration keys")
	configCmd.MarkFlagsMutuallyExclusive("template", "keys")
}

// printConfig renders every known key with its value and source.
func printConfig(w io.Writer, cfg *config.Config) error {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(w, bold("Current Configuration:"))
	if cfg.File() == "" {
		fmt.Fprintln(w, dim("No configuration loaded."))
	} else {
		fmt.Fprintf(w, "%s %s\n", dim("File:"), cfg.File())
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Value", "Source"})

	data := make([][]string, 0, len(config.KnownKeys))
	for _, key := range config.SortedKeys() {
		value, ok := cfg.Lookup(key)
		src := string(cfg.Source(key))
		if !ok {
			value, src = "", "unset"
		}
		data = append(data, []string{key, value, src})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return table.Render()
}

// printConfigKeys lists the supported keys with their types.
func printConfigKeys(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Type", "Description"})

	data := make([][]string, 0, len(config.KnownKeys))
	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ = fmt.Sprintf("%s %v", typ, schema.AllowedValues)
		}
		data = append(data, []string{key, typ, schema.Description})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return table.Render()
}
