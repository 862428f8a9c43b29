// Package groups is the gorm backed store of local groups and their memberships.
package groups

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

// ErrGroupNameEmpty is returned when a group is ensured without a name.
var ErrGroupNameEmpty = errors.New("group name cannot be empty")

// Store reads groups and adds members to them.
type Store struct {
	db *gorm.DB
}

// New creates a new group store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByName returns the group with exactly this name, or nil when there is none.
func (s *Store) FindByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group

	err := s.db.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query group %s: %w", name, err)
	}

	return &group, nil
}

// AddMember adds the user to the group. Adding an existing member is a no-op
// and reports false.
func (s *Store) AddMember(ctx context.Context, groupID uint, userID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.GroupUser{GroupID: groupID, UserID: userID})
	if result.Error != nil {
		return false, fmt.Errorf("failed to add group membership: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Ensure returns the named group, creating it when missing.
func (s *Store) Ensure(ctx context.Context, name, description string) (*models.Group, error) {
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	var group models.Group

	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(models.Group{Description: description}).
		FirstOrCreate(&group, models.Group{Name: name}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create/get group %s: %w", name, err)
	}

	return &group, nil
}

// GroupsForUser retrieves all groups a user belongs to, ordered by name.
func (s *Store) GroupsForUser(ctx context.Context, userID uint64) ([]models.Group, error) {
	var groups []models.Group

	err := s.db.WithContext(ctx).Table("groups").
		Joins("JOIN group_users ON group_users.group_id = groups.id").
		Where("group_users.user_id = ?", userID).
		Order("groups.name").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}

	return groups, nil
}

// ListMembers retrieves the members of a group, ordered by username.
func (s *Store) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	var users []models.User

	err := s.db.WithContext(ctx).Table("users").
		Joins("JOIN group_users ON group_users.user_id = users.id").
		Where("group_users.group_id = ?", groupID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	return users, nil
}
