package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/crowd"
	"github.com/crowdlink/crowdlink/internal/daemon"
	"github.com/crowdlink/crowdlink/internal/db/models"
)

type resolveOptions struct {
	uid    string
	name   string
	email  string
	groups []string
	create bool
}

// ResolveOutput is what the resolve command prints.
type ResolveOutput struct {
	Result  crowd.Result `json:"result"`
	Groups  crowd.Report `json:"groups"`
	Created bool         `json:"created"`
}

var resolveOpts resolveOptions

func init() { //nolint: gochecknoinits
	resolveCmd.Flags().StringVar(&resolveOpts.uid, "uid", "", "Crowd uid")
	resolveCmd.Flags().StringVar(&resolveOpts.name, "name", "", "display name")
	resolveCmd.Flags().StringVar(&resolveOpts.email, "email", "", "email address")
	resolveCmd.Flags().StringSliceVar(&resolveOpts.groups, "group", nil, "declared Crowd group, repeatable")
	resolveCmd.Flags().BoolVar(&resolveOpts.create, "create", false, "create the account when none exists yet")

	_ = resolveCmd.MarkFlagRequired("uid")

	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run an authentication event through the resolver and group sync",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCore(cmd, func(ctx context.Context, core *daemon.Core) error {
			out, err := runResolve(ctx, core, resolveOpts)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), out)
		})
	},
}

func runResolve(ctx context.Context, core *daemon.Core, opts resolveOptions) (ResolveOutput, error) {
	id := crowd.NewIdentity(opts.uid, opts.name, opts.email, opts.groups)

	res, report, err := core.Auth.Authenticate(ctx, id)
	if err != nil {
		return ResolveOutput{}, err
	}

	out := ResolveOutput{Result: res, Groups: report}

	if res.Account != nil || !opts.create {
		return out, nil
	}

	user, err := core.Accounts.Create(ctx, accounts.Attrs{
		Username:   res.Username,
		Name:       res.Name,
		Email:      res.Email,
		AuthSource: models.AuthSourceCrowd,
	})
	if err != nil {
		return ResolveOutput{}, err
	}

	if out.Groups, err = core.Auth.AfterCreateAccount(ctx, user.ID, id, res.PendingUID); err != nil {
		return ResolveOutput{}, err
	}

	out.Result.Account = user
	out.Created = true

	return out, nil
}
