package main

import (
	"errors"
	"fmt"

	"portfolio/internal/app"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DSN == "" {
			return errors.New("dsn is not configured, accounts in the in-memory store are lost on exit")
		}

		application, err := app.New(cmd.Context(), setupLogger(cfg.Env), cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		id, err := application.Auth.RegisterAdmin(cmd.Context(), adminEmail, adminPassword)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s (%s)\n", color.GreenString("created admin"), adminEmail, id)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}
