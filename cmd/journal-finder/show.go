// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-finder/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <journal name>",
	Short: "Show one journal's full record",
	Long: `Show prints the record of the journal whose name matches the argument,
ignoring case. Arguments are joined with spaces, so quoting is optional.
An unknown name is an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	_, store, err := openDataset(background(cmd))
	if err != nil {
		return err
	}
	j, err := store.FindByName(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagBool(cmd, "json"):
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(j)
	case flagBool(cmd, "yaml"):
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(j); err != nil {
			return err
		}
		return enc.Close()
	default:
		printJournal(out, j)
		return nil
	}
}

func printJournal(w io.Writer, j types.Journal) {
	fmt.Fprintf(w, "%-16s %s\n", "Name:", j.Name)
	impact := "-"
	if j.ImpactFactor.Valid {
		impact = fmt.Sprintf("%.3f", j.ImpactFactor.Float64)
	}
	fmt.Fprintf(w, "%-16s %s\n", "Impact Factor:", impact)
	fmt.Fprintf(w, "%-16s %s\n", "Description:", j.Description.String)
	fmt.Fprintf(w, "%-16s %s\n", "Keywords:", j.Keywords.String)
	fmt.Fprintf(w, "%-16s %s\n", "Aim and Scope:", j.AimAndScope.String)
	for _, f := range j.Extra {
		fmt.Fprintf(w, "%-16s %s\n", f.Column+":", f.Value)
	}
}

func init() {
	showCmd.Flags().Bool("json", false, "output the journal as JSON")
	showCmd.Flags().Bool("yaml", false, "output the journal as YAML")
	showCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(showCmd)
}
