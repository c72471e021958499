package main

import (
	"errors"

	"portfolio/internal/storage/postgresql"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the PostgreSQL tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DSN == "" {
			return errors.New("dsn is not configured")
		}

		st, err := postgresql.New(cmd.Context(), cfg.DSN)
		if err != nil {
			return err
		}
		defer st.Stop()

		if err := st.ApplySchema(cmd.Context()); err != nil {
			return err
		}

		color.Green("schema applied")
		return nil
	},
}
