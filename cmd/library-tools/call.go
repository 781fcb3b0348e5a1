package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments]",
	Short: "Invoke a tool and print its text output",
	Long: `Call runs one tool. Arguments come from an optional JSON object (inline or
from --args-file, with // comments and trailing commas allowed) and from
repeated --arg key=value flags, which override keys of the object. A flag
value that parses as JSON (numbers, booleans, arrays) is used as such;
anything else is passed as a string.

  library-tools call search_works '{"query":"urban heat islands"}'
  library-tools call lookup_worldcat_isbn --arg isbn=9780262033848 --arg fetch_holdings=true`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("arg")
		file, _ := cmd.Flags().GetString("args-file")
		raw := ""
		if len(args) == 2 {
			raw = args[1]
		}
		if file != "" {
			if raw != "" {
				return fmt.Errorf("give arguments inline or with --args-file, not both")
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			raw = string(data)
		}
		payload, err := buildArgs(raw, pairs)
		if err != nil {
			return err
		}

		out, err := newRegistry(settings, nil).Call(cmd.Context(), args[0], payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	callCmd.Flags().StringArray("arg", nil, "tool argument as key=value (repeatable)")
	callCmd.Flags().String("args-file", "", "read the JSON arguments object from this file")
	rootCmd.AddCommand(callCmd)
}

// buildArgs merges a JSONC object with key=value pairs into one arguments
// object.
func buildArgs(raw string, pairs []string) (json.RawMessage, error) {
	obj := map[string]json.RawMessage{}
	if raw = strings.TrimSpace(raw); raw != "" {
		if err := json.Unmarshal(jsonc.ToJSON([]byte(raw)), &obj); err != nil {
			return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q: want key=value", pair)
		}
		if json.Valid([]byte(value)) {
			obj[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		obj[key] = quoted
	}
	return json.Marshal(obj)
}
