package crowd

import (
	"context"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/db/models"
	"github.com/crowdlink/crowdlink/internal/linkstore"
)

// AccountStore is the local account store. Find methods return nil, nil when
// nothing matches.
type AccountStore interface {
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, attrs accounts.Attrs) (*models.User, error)
}

// Outcome tells how a resolution ended.
type Outcome string

const (
	// OutcomeLinked means the account was found through a stored link.
	OutcomeLinked Outcome = "linked"
	// OutcomeEmail means the account was found by exact email match.
	OutcomeEmail Outcome = "email"
	// OutcomePending means no account exists yet and the caller has to create one.
	OutcomePending Outcome = "pending"
	// OutcomeExisting means the account was found by username.
	OutcomeExisting Outcome = "existing"
	// OutcomeCreated means the account was created during resolution.
	OutcomeCreated Outcome = "created"
)

// Result is the outcome of resolving an Identity.
type Result struct {
	// Account is nil when no local account exists yet.
	Account *models.User `json:"account"`
	// Username is the suggested username for a new account, the Crowd uid.
	Username string `json:"username"`
	Email    string `json:"email"`
	// EmailVerified is always true, Crowd is trusted to have verified the address.
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	// PendingUID is handed back to OnAccountCreated once the account exists.
	PendingUID string  `json:"pending_uid,omitempty"`
	Outcome    Outcome `json:"outcome"`
}

// Resolver maps identities to local accounts for one Mode.
type Resolver interface {
	// Resolve finds the local account for id. A missing account is not an error.
	Resolve(ctx context.Context, id Identity) (Result, error)
	// AccountCreated completes a resolution that ended without an account.
	AccountCreated(ctx context.Context, userID uint64, pendingUID string) error
	// Mode returns the linking mode the resolver implements.
	Mode() Mode
}

// NewResolver returns the resolver for mode.
func NewResolver(mode Mode, accts AccountStore, links linkstore.Store) Resolver {
	if mode == ModeMixed {
		return newMixedResolver(accts)
	}

	return newSeparatedResolver(accts, links)
}

func newResult(id Identity) Result {
	return Result{
		Username:      id.UID,
		Email:         id.Email,
		EmailVerified: true,
		Name:          id.Name,
	}
}
