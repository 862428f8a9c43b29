// Package linkstore persists the association between a Crowd uid and a local account id.
//
// Records live in the "crowd" namespace under the key "crowd_user_<uid>" and are
// encoded as {"user_id": <id>}. Two backends exist: the gorm plugin store table
// and any gofiber storage driver.
package linkstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// Namespace is the plugin name the records are stored under.
	Namespace = "crowd"
	keyPrefix = "crowd_user_"
)

var (
	// ErrLinkExists is returned by Create when the uid is already linked.
	ErrLinkExists = errors.New("crowd uid is already linked")
	// ErrUIDEmpty is returned for an empty uid.
	ErrUIDEmpty = errors.New("crowd uid cannot be empty")
	// ErrMalformedRecord is returned when a stored record cannot be decoded.
	ErrMalformedRecord = errors.New("malformed link record")
)

// Link associates a Crowd uid with a local account.
type Link struct {
	UID    string `json:"-"`
	UserID uint64 `json:"user_id"`
}

// Store is the contract both backends implement.
type Store interface {
	// Get returns the link for uid, or nil when there is none.
	Get(ctx context.Context, uid string) (*Link, error)
	// Set writes the link, replacing any existing one.
	Set(ctx context.Context, uid string, userID uint64) error
	// Create writes the link only if uid is not linked yet, otherwise ErrLinkExists.
	Create(ctx context.Context, uid string, userID uint64) error
}

// Key returns the record key for uid.
func Key(uid string) string {
	return keyPrefix + uid
}

func encode(userID uint64) ([]byte, error) {
	out, err := json.Marshal(Link{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode link record: %w", err)
	}

	return out, nil
}

func decode(uid string, raw []byte) (*Link, error) {
	link := Link{UID: uid}
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrMalformedRecord, uid, err)
	}

	return &link, nil
}
