// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dest>",
	Short: "Write the loaded dataset to another format",
	Long: `Export loads the configured dataset and writes it to dest. The format is
chosen by extension: .csv, .tsv, .yaml/.yml, or .db/.sqlite for a SQLite
database, whose table (--table, default "journals") is replaced.

Converting the curated CSV to SQLite once gives a dataset that serve and
search read with column types intact.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := background(cmd)
	_, store, err := openDataset(ctx)
	if err != nil {
		return err
	}
	table, _ := cmd.Flags().GetString("table")
	if err := store.Export(ctx, args[0], table); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d journals to %s\n", store.Len(), args[0])
	return nil
}

func init() {
	exportCmd.Flags().String("table", "", "SQLite table to write (default journals)")

	rootCmd.AddCommand(exportCmd)
}
