package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newUsername string
	newPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStorage(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.close()

		if cfg.Database.AutoMigrate {
			if err := st.migrator.Up(ctx); err != nil {
				return err
			}
		}

		_, usersUC, err := st.usecases(cfg.Web.BcryptCost)
		if err != nil {
			return err
		}

		user, err := usersUC.Signup(ctx, newUsername, newPassword)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "user %s created with id %d\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&newUsername, "username", "", "account name")
	usersCreateCmd.Flags().StringVar(&newPassword, "password", "", "account password, at least 8 characters")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}
