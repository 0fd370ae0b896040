package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/localnerve/rentdb/internal/database"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// session is an open store plus the credential settings
type session struct {
	db            *gorm.DB
	creds         *services.Credentials
	adminUsername string
	adminPassword string
}

func (s *session) close() {
	_ = database.Close(s.db)
}

type opener func() (*session, error)

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "rentdb-admin",
		Short:         "RentDB administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		migrateCmd(open),
		userCmd(open),
		statsCmd(open),
	)

	return root
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the first administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := database.AutoMigrate(s.db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			seeded, err := database.SeedAdmin(s.db, s.adminUsername, s.adminPassword, s.creds.Hash)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			if seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded administrator %q\n", s.adminUsername)
			}
			return nil
		},
	}
}

func userCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			language, _ := cmd.Flags().GetString("language")

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			user, err := services.CreateUser(s.db, s.creds, nil, services.UserInput{
				Username: &username,
				Password: &password,
				Role:     &role,
				Language: &language,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q with id %d\n", user.Role, user.Username, user.ID)
			return nil
		},
	}
	create.Flags().String("username", "", "Login name")
	create.Flags().String("password", "", "Initial password")
	create.Flags().String("role", models.RoleOperator, "admin or operator")
	create.Flags().String("language", "fr", "Preferred language")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	passwd := &cobra.Command{
		Use:   "passwd",
		Short: "Reset a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := services.SetPassword(s.db, s.creds, username, password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password of %q changed\n", username)
			return nil
		},
	}
	passwd.Flags().String("username", "", "Login name")
	passwd.Flags().String("password", "", "New password")
	_ = passwd.MarkFlagRequired("username")
	_ = passwd.MarkFlagRequired("password")

	cmd.AddCommand(create, passwd)
	return cmd
}

func statsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the headline numbers as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			stats, err := services.StatsReport(s.db)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}
