package models

import "time"

// Group is a local forum group that Crowd groups are mapped onto.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique group name referenced by the group mapping.
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:255" json:"description"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
