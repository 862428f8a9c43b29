package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthSource records how a local account came into existence.
type AuthSource string

const (
	// AuthSourceLocal marks accounts registered locally, not through Crowd.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceCrowd marks accounts created on behalf of a Crowd login.
	AuthSourceCrowd AuthSource = "crowd"
)

// User is a local forum account.
// Crowd never owns this row, it only reads it or asks for its creation.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Active indicates whether the user account is active and can log in.
	Active bool `json:"active"`
	// Username is the unique login name. In mixed mode it equals the Crowd uid.
	Username string `gorm:"unique;size:100;not null" json:"username"`
	// Email is matched exactly by the separated resolver.
	Email string `gorm:"size:255;not null;index" json:"email"`
	// Name is the display name.
	Name string `gorm:"size:255" json:"name"`
	// Password is the Argon2id hash, empty for accounts created through Crowd.
	Password string `gorm:"size:255" json:"-"`
	// AuthSource indicates how this account was created.
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'local'" json:"auth_source"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// Accounts without a local password never verify.
func (u *User) VerifyPassword(password string) bool {
	if u.Password == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}
