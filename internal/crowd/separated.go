package crowd

import (
	"context"
	"errors"
	"fmt"

	"github.com/crowdlink/crowdlink/internal/linkstore"
)

type separatedResolver struct {
	accounts AccountStore
	links    linkstore.Store
}

func newSeparatedResolver(accts AccountStore, links linkstore.Store) *separatedResolver {
	return &separatedResolver{accounts: accts, links: links}
}

func (r *separatedResolver) Mode() Mode {
	return ModeSeparated
}

func (r *separatedResolver) Resolve(ctx context.Context, id Identity) (Result, error) {
	res := newResult(id)
	res.PendingUID = id.UID

	link, err := r.links.Get(ctx, id.UID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: link of %s: %w", ErrStoreRead, id.UID, err)
	}

	// a link is authoritative, unless its account is gone
	if link != nil {
		account, err := r.accounts.FindByID(ctx, link.UserID)
		if err != nil {
			return Result{}, fmt.Errorf("%w: user %d: %w", ErrStoreRead, link.UserID, err)
		}

		if account != nil {
			res.Account = account
			res.Outcome = OutcomeLinked

			return res, nil
		}
	}

	account, err := r.accounts.FindByEmail(ctx, id.Email)
	if err != nil {
		return Result{}, fmt.Errorf("%w: user by email: %w", ErrStoreRead, err)
	}

	if account != nil {
		res.Account = account
		res.Outcome = OutcomeEmail

		return res, nil
	}

	res.Outcome = OutcomePending

	return res, nil
}

func (r *separatedResolver) AccountCreated(ctx context.Context, userID uint64, pendingUID string) error {
	if pendingUID == "" {
		return nil
	}

	err := r.links.Create(ctx, pendingUID, userID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, linkstore.ErrLinkExists) {
		return fmt.Errorf("%w: link %s to user %d: %w", ErrStoreWrite, pendingUID, userID, err)
	}

	existing, err := r.links.Get(ctx, pendingUID)
	if err != nil {
		return fmt.Errorf("%w: link of %s: %w", ErrStoreRead, pendingUID, err)
	}

	if existing != nil && existing.UserID == userID {
		return nil
	}

	conflict := &LinkConflictError{UID: pendingUID}
	if existing != nil {
		conflict.ExistingUserID = existing.UserID
	}

	return conflict
}
