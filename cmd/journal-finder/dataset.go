// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-finder/internal/dataset"
	"github.com/pdiddy/journal-finder/pkg/types"
)

// openDataset decodes the configuration and loads the dataset it names.
func openDataset(ctx context.Context) (types.Config, *dataset.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return types.Config{}, nil, err
	}
	store, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		return types.Config{}, nil, err
	}
	st := store.Stats()
	slog.Info("dataset loaded",
		"source", store.Source(),
		"records", st.Records,
		"with_scope", st.WithScope,
		"with_impact", st.WithImpact,
	)
	return cfg, store, nil
}

// background returns the command context, or context.Background when the
// command runs outside Execute.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
