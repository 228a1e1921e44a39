// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	Long: `Stats loads the dataset and reports how many journals it holds, how many
have aims-and-scope text for abstract search and an impact factor for
keyword ranking, and which rows or cells were dropped while loading.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, store, err := openDataset(background(cmd))
	if err != nil {
		return err
	}
	st := store.Stats()

	out := cmd.OutOrStdout()
	switch {
	case flagBool(cmd, "json"):
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case flagBool(cmd, "yaml"):
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(out, "Source:             %s\n", store.Source())
	fmt.Fprintf(out, "Journals:           %d\n", st.Records)
	fmt.Fprintf(out, "With aim and scope: %d\n", st.WithScope)
	fmt.Fprintf(out, "With impact factor: %d\n", st.WithImpact)
	fmt.Fprintf(out, "Bad impact factors: %d\n", st.BadImpact)
	fmt.Fprintf(out, "Skipped rows:       %d\n", st.SkippedRows)
	fmt.Fprintf(out, "Columns:            %s\n", strings.Join(st.Columns, ", "))
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")
	statsCmd.Flags().Bool("yaml", false, "output statistics as YAML")
	statsCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(statsCmd)
}
