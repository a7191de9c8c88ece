package main

import (
	"fmt"

	goose "github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/guttosm/stockr/config"
	"github.com/guttosm/stockr/internal/app"
	"github.com/guttosm/stockr/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL session store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("goose dialect: %w", err)
			}
			if err := goose.UpContext(cmd.Context(), db, dir); err != nil {
				return fmt.Errorf("migrate %s: %w", dir, err)
			}

			logger.L().Info().Str("dir", dir).Msg("migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "db/migrations", "Directory with goose migrations")
	return cmd
}
