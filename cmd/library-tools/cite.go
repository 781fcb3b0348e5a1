package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/library-tools/internal/citation"
	"github.com/pdiddy/library-tools/internal/openalex"
	"github.com/pdiddy/library-tools/internal/repository"
	"github.com/pdiddy/library-tools/internal/worldcat"
	"github.com/pdiddy/library-tools/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite <openalex|worldcat|repository> <query>",
	Short: "Search a service and export the results as CSL-YAML",
	Long: `Cite runs a search against OpenAlex, WorldCat or the institutional
repository and writes the records as a CSL-YAML list, ready for Pandoc
(--bibliography) or a reference manager.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		items, err := citeSearch(cmd.Context(), settings, args[0], strings.Join(args[1:], " "), limit)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return citation.Encode(w, items)
	},
}

func init() {
	citeCmd.Flags().Int("limit", 10, "maximum number of records")
	citeCmd.Flags().StringP("output", "o", "", "write CSL-YAML to this file instead of stdout")
	rootCmd.AddCommand(citeCmd)
}

// citeSearch runs the search for source and converts the records.
func citeSearch(ctx context.Context, s *types.Settings, source, query string, limit int) ([]citation.Item, error) {
	var items []citation.Item
	switch source {
	case "openalex":
		c, err := openalex.New(s.OpenAlex, s.HTTP, nil)
		if err != nil {
			return nil, err
		}
		works, err := c.SearchWorks(ctx, openalex.WorksQuery{Query: query, Limit: limit, Page: 1})
		if err != nil {
			return nil, err
		}
		for _, w := range works {
			items = append(items, citation.FromWork(w))
		}
	case "worldcat":
		c, err := worldcat.New(s.WorldCat, s.HTTP, nil)
		if err != nil {
			return nil, err
		}
		books, err := c.SearchBooks(ctx, worldcat.BookQuery{Query: query, Limit: limit, Offset: 1})
		if err != nil {
			return nil, err
		}
		for _, b := range books {
			items = append(items, citation.FromBook(b))
		}
	case "repository":
		c, err := repository.New(s.Repository, s.HTTP, nil)
		if err != nil {
			return nil, err
		}
		res, err := c.Search(ctx, repository.SearchParams{Query: query, Limit: limit})
		if err != nil {
			return nil, err
		}
		for _, w := range res.Works {
			items = append(items, citation.FromRepositoryWork(w))
		}
	default:
		return nil, fmt.Errorf("unknown source %q (want openalex, worldcat or repository)", source)
	}
	return items, nil
}
