package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/library-tools/internal/config"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Long: `Tools lists every registered tool with its description. The json and yaml
formats include the argument schema of each tool. With --verbose the names
of the settings that currently hold a value are written to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := writeCatalog(os.Stdout, newRegistry(settings, nil).Tools(), format); err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			writeConfigured(os.Stderr, config.Configured(viper.GetViper()))
		}
		return nil
	},
}

func init() {
	toolsCmd.Flags().String("format", "table", "output format: table, json or yaml")
	toolsCmd.Flags().Bool("verbose", false, "also list which settings are configured")
	rootCmd.AddCommand(toolsCmd)
}

// catalogEntry is the serialized form of a tool.
type catalogEntry struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	InputSchema map[string]any `json:"input_schema" yaml:"input_schema"`
}

func writeCatalog(w io.Writer, list []tools.Tool, format string) error {
	switch format {
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION")
		for _, t := range list {
			fmt.Fprintf(tw, "%s\t%s\n", t.Name, textfmt.Preview(t.Description, 80))
		}
		return tw.Flush()
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}

	entries := make([]catalogEntry, len(list))
	for i, t := range list {
		entries[i] = catalogEntry{Name: t.Name, Description: t.Description}
		if err := json.Unmarshal(t.InputSchema, &entries[i].InputSchema); err != nil {
			return fmt.Errorf("decoding schema of %s: %w", t.Name, err)
		}
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}

// writeConfigured lists setting names only; values may be secrets.
func writeConfigured(w io.Writer, keys []string) {
	if len(keys) == 0 {
		fmt.Fprintln(w, "Configured settings: none")
		return
	}
	fmt.Fprintf(w, "Configured settings: %s\n", strings.Join(keys, ", "))
}
