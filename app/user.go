package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/daemon"
	"github.com/crowdlink/crowdlink/internal/db/models"
)

var userOpts struct {
	username string
	email    string
	name     string
	password string
}

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{userCreateCmd, userVerifyCmd} {
		c.Flags().StringVar(&userOpts.username, "username", "", "username")
		c.Flags().StringVar(&userOpts.password, "password", "", "password")
		_ = c.MarkFlagRequired("username")
	}

	userCreateCmd.Flags().StringVar(&userOpts.email, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userOpts.name, "name", "", "display name")

	userCmd.AddCommand(userCreateCmd, userVerifyCmd)
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a local account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			user, err := core.Accounts.Create(ctx, accounts.Attrs{
				Username:   userOpts.username,
				Name:       userOpts.name,
				Email:      userOpts.email,
				Password:   userOpts.password,
				AuthSource: models.AuthSourceLocal,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), user)
		})
	},
}

var userVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the password of a local account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			user, err := core.Accounts.Authenticate(ctx, userOpts.username, userOpts.password)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: user %s (id %d)\n", user.Username, user.ID)

			return err //nolint:wrapcheck
		})
	},
}
