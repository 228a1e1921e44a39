//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// datasetArgs passes $DATASET to the CLI when it is set.
func datasetArgs() []string {
	if ds := os.Getenv("DATASET"); ds != "" {
		return []string{"--dataset", ds}
	}
	return nil
}

// Serve builds the CLI and starts the web front end. Set DATASET to
// choose the dataset and PORT to choose the port.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath, append([]string{"serve", "--log-level", "info"}, datasetArgs()...)...)
}

// Stats builds the CLI and prints statistics for the configured dataset.
func Stats() error {
	mg.Deps(Build)
	return sh.RunV(binPath, append([]string{"stats"}, datasetArgs()...)...)
}

// Search builds the CLI and runs a keyword search for $QUERY, or an
// abstract search when MODE=abstract.
func Search() error {
	mg.Deps(Build)
	mode := os.Getenv("MODE")
	if mode == "" {
		mode = "keyword"
	}
	args := append([]string{"search", "--mode", mode}, datasetArgs()...)
	return sh.RunV(binPath, append(args, os.Getenv("QUERY"))...)
}
