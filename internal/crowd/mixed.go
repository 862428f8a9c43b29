package crowd

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/db/models"
)

type mixedResolver struct {
	accounts AccountStore
	creates  singleflight.Group
}

func newMixedResolver(accts AccountStore) *mixedResolver {
	return &mixedResolver{accounts: accts}
}

func (r *mixedResolver) Mode() Mode {
	return ModeMixed
}

func (r *mixedResolver) Resolve(ctx context.Context, id Identity) (Result, error) {
	res := newResult(id)

	account, err := r.accounts.FindByUsername(ctx, id.UID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: user %s: %w", ErrStoreRead, id.UID, err)
	}

	if account != nil {
		res.Account = account
		res.Outcome = OutcomeExisting

		return res, nil
	}

	// concurrent first logins of one uid share a single create
	v, err, _ := r.creates.Do(id.UID, func() (any, error) {
		return r.create(ctx, id)
	})
	if err != nil {
		return Result{}, err
	}

	created := *v.(*models.User)
	res.Account = &created
	res.Outcome = OutcomeCreated

	return res, nil
}

func (r *mixedResolver) create(ctx context.Context, id Identity) (*models.User, error) {
	account, err := r.accounts.Create(ctx, accounts.Attrs{
		Username:   id.UID,
		Name:       id.Name,
		Email:      id.Email,
		AuthSource: models.AuthSourceCrowd,
	})
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, accounts.ErrAccountExists) {
		return nil, fmt.Errorf("%w: create user %s: %w", ErrStoreWrite, id.UID, err)
	}

	// another process won the race, its account is ours
	account, err = r.accounts.FindByUsername(ctx, id.UID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s: %w", ErrStoreRead, id.UID, err)
	}

	if account == nil {
		return nil, fmt.Errorf("%w: user %s vanished after conflicting create", ErrStoreWrite, id.UID)
	}

	return account, nil
}

// AccountCreated is a no-op, mixed mode never defers account creation.
func (r *mixedResolver) AccountCreated(context.Context, uint64, string) error {
	return nil
}
