package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"portfolio/internal/app"
	"portfolio/internal/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateAll bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy catalog defaults into the store",
}

var migrateMediaCmd = &cobra.Command{
	Use:   "media [section...]",
	Short: "Persist the catalog media of sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context(), args, catalog.Sections(), func(ctx context.Context, a *app.App, section string) (bool, error) {
			return a.Media.Migrate(ctx, section)
		})
	},
}

var migrateContentCmd = &cobra.Command{
	Use:   "content [section...]",
	Short: "Persist the default content of sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context(), args, catalog.ContentSections(), func(ctx context.Context, a *app.App, section string) (bool, error) {
			return a.Content.Migrate(ctx, section)
		})
	},
}

func init() {
	migrateCmd.PersistentFlags().BoolVar(&migrateAll, "all", false, "migrate every section with catalog data")

	migrateCmd.AddCommand(migrateMediaCmd)
	migrateCmd.AddCommand(migrateContentCmd)
}

func runMigrate(ctx context.Context, sections, all []string, migrate func(context.Context, *app.App, string) (bool, error)) error {
	if migrateAll {
		sections = all
	}
	if len(sections) == 0 {
		return errors.New("name at least one section or pass --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DSN == "" {
		return errors.New("migration needs a dsn, the in-memory store does not outlive this command")
	}

	application, err := app.New(ctx, setupLogger(cfg.Env), cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	sort.Strings(sections)

	var failed int
	for _, section := range sections {
		migrated, err := migrate(ctx, application, section)
		switch {
		case err != nil:
			failed++
			fmt.Printf("%-18s %s %v\n", section, color.RedString("failed"), err)
		case migrated:
			fmt.Printf("%-18s %s\n", section, color.GreenString("migrated"))
		default:
			fmt.Printf("%-18s %s\n", section, color.YellowString("up to date"))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sections failed", failed, len(sections))
	}
	return nil
}
