package models

import "time"

// GroupUser is one membership of a user in a local group.
// The composite primary key makes adding an existing member a no-op.
type GroupUser struct {
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// Group is the associated group, memberships go away with it.
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// User is the associated user, memberships go away with it.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user was added to the group (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the GroupUser model.
func (GroupUser) TableName() string {
	return "group_users"
}
