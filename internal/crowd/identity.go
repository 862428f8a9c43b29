package crowd

import "strings"

// Identity is one authentication event received from Crowd.
type Identity struct {
	UID    string   `json:"uid"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Groups []string `json:"groups"`
}

// NewIdentity builds an Identity. The groups slice is copied so the event stays
// unchanged when the caller reuses its slice.
func NewIdentity(uid, name, email string, groups []string) Identity {
	return Identity{
		UID:    strings.TrimSpace(uid),
		Name:   name,
		Email:  strings.TrimSpace(email),
		Groups: append([]string(nil), groups...),
	}
}

// Validate checks the fields resolution depends on.
func (i Identity) Validate() error {
	if i.UID == "" {
		return ErrUIDEmpty
	}

	return nil
}
