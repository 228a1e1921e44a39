// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-finder/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Rank journals for a keyword or an abstract",
	Long: `Search ranks the dataset's journals for a query. Arguments are joined
with spaces into one query string.

In keyword mode (the default), journals whose description, subject keywords,
or name contain the query (ignoring case) are listed by impact factor,
highest first. In abstract mode, journals with aims-and-scope text are
ranked by TF-IDF cosine similarity to the query.

When nothing matches, the advisory message is printed instead of a table
and the command still succeeds.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, store, err := openDataset(background(cmd))
	if err != nil {
		return err
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		cfg.Search.MaxResults = limit
	}

	mode, _ := cmd.Flags().GetString("mode")
	result, err := search.NewSearcher(store, cfg.Search).Search(strings.Join(args, " "), mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagBool(cmd, "json"):
		return search.FormatJSON(result, out)
	case flagBool(cmd, "yaml"):
		return search.FormatYAML(result, out)
	default:
		search.FormatTable(result, out)
		return nil
	}
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	searchCmd.Flags().String("mode", string(search.ModeKeyword), "search mode: keyword or abstract")
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default: search.max_results, 0 = all)")
	searchCmd.Flags().Bool("strict", false, "reject unknown modes instead of falling back to abstract search")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("yaml", false, "output results as YAML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	_ = viper.BindPFlag("search.strict_mode", searchCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(searchCmd)
}
