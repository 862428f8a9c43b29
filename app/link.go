package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crowdlink/crowdlink/internal/daemon"
	"github.com/crowdlink/crowdlink/internal/linkstore"
)

// ErrListUnsupported is returned when the link backend cannot enumerate links.
var ErrListUnsupported = errors.New("the configured link backend cannot list links")

// ErrLinkNotFound is returned by link get for an unlinked uid.
var ErrLinkNotFound = errors.New("no link for this uid")

// ErrUserNotFound is returned by link set for an unknown account id.
var ErrUserNotFound = errors.New("user does not exist")

// linkOutput is the printed form of a link, the stored record omits the uid.
type linkOutput struct {
	UID    string `json:"uid"`
	UserID uint64 `json:"user_id"`
}

var linkOpts struct {
	uid    string
	userID uint64
}

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{linkGetCmd, linkSetCmd, linkDeleteCmd} {
		c.Flags().StringVar(&linkOpts.uid, "uid", "", "Crowd uid")
		_ = c.MarkFlagRequired("uid")
	}

	linkSetCmd.Flags().Uint64Var(&linkOpts.userID, "user-id", 0, "local account id")
	_ = linkSetCmd.MarkFlagRequired("user-id")

	linkCmd.AddCommand(linkGetCmd, linkSetCmd, linkDeleteCmd, linkListCmd)
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Inspect and repair Crowd uid links",
}

var linkGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the account a Crowd uid is linked to",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			link, err := core.Links.Get(ctx, linkOpts.uid)
			if err != nil {
				return err
			}

			if link == nil {
				return fmt.Errorf("%w: %s", ErrLinkNotFound, linkOpts.uid)
			}

			return printJSON(cmd.OutOrStdout(), linkOutput{UID: link.UID, UserID: link.UserID})
		})
	},
}

var linkSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Link a Crowd uid to a local account, replacing any existing link",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			user, err := core.Accounts.FindByID(ctx, linkOpts.userID)
			if err != nil {
				return err
			}

			if user == nil {
				return fmt.Errorf("%w: %d", ErrUserNotFound, linkOpts.userID)
			}

			return core.Links.Set(ctx, linkOpts.uid, user.ID)
		})
	},
}

var linkDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the link of a Crowd uid",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			return core.Links.Delete(ctx, linkOpts.uid)
		})
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all links (db backend only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			lister, ok := core.Links.(interface {
				List(ctx context.Context) ([]linkstore.Link, error)
			})
			if !ok {
				return ErrListUnsupported
			}

			links, err := lister.List(ctx)
			if err != nil {
				return err
			}

			out := make([]linkOutput, 0, len(links))
			for _, l := range links {
				out = append(out, linkOutput{UID: l.UID, UserID: l.UserID})
			}

			return printJSON(cmd.OutOrStdout(), out)
		})
	},
}
