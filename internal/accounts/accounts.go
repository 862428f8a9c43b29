// Package accounts is the gorm backed store of local forum accounts.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

var (
	// ErrAccountExists is returned when the username is already taken.
	ErrAccountExists = errors.New("account with this username already exists")
	// ErrUsernameEmpty is returned when an account is created without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrInvalidCredentials is returned for an unknown user, a disabled account or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Attrs are the attributes of an account to be created.
type Attrs struct {
	Username   string
	Name       string
	Email      string
	Password   string // plaintext, hashed before storing; empty for external accounts
	AuthSource models.AuthSource
}

// Store reads and creates local accounts.
type Store struct {
	db *gorm.DB
}

// New creates a new account store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// FindByID returns the account with the given id, or nil when there is none.
func (s *Store) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

// FindByEmail returns the first account with exactly this email, or nil.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil //nolint:nilnil
	}

	return s.first(ctx, "email = ?", email)
}

// FindByUsername returns the account with this username, or nil.
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, nil //nolint:nilnil
	}

	return s.first(ctx, "username = ?", username)
}

// Create inserts a new active account.
func (s *Store) Create(ctx context.Context, attrs Attrs) (*models.User, error) {
	username := strings.TrimSpace(attrs.Username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	existing, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existing != nil {
		return nil, ErrAccountExists
	}

	source := attrs.AuthSource
	if source == "" {
		source = models.AuthSourceLocal
	}

	user := models.User{
		Active:     true,
		Username:   username,
		Email:      attrs.Email,
		Name:       attrs.Name,
		AuthSource: source,
	}

	if attrs.Password != "" {
		if user.Password, err = models.HashPassword(attrs.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	// a concurrent insert of the same username is caught by the unique index
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks a local password login.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil || !user.Active || !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
