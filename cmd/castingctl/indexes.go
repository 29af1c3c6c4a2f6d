package main

import (
	"context"

	"github.com/spf13/cobra"

	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
)

func newIndexesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique and TTL indexes the API relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := mongodoc.EnsureIndexes(ctx, s.db, s.collections); err != nil {
					return err
				}
				opts.logger.Info("indexes ensured", "db", s.db.Name())
				return nil
			})
		},
	}
}
