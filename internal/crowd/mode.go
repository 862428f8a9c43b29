package crowd

import "strings"

// Mode selects how Crowd identities are linked to local accounts.
type Mode int

const (
	// ModeSeparated links through stored links and, initially, exact email matches.
	ModeSeparated Mode = iota
	// ModeMixed uses the Crowd uid as the local username.
	ModeMixed
)

const (
	modeSeparatedName = "separated"
	modeMixedName     = "mixed"
)

// ParseMode turns the configured mode string into a Mode.
// Anything other than "mixed" means separated; ok reports whether s was recognized.
func ParseMode(s string) (mode Mode, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case modeMixedName:
		return ModeMixed, true
	case modeSeparatedName, "":
		return ModeSeparated, true
	default:
		return ModeSeparated, false
	}
}

func (m Mode) String() string {
	if m == ModeMixed {
		return modeMixedName
	}

	return modeSeparatedName
}
