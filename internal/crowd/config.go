package crowd

import (
	"fmt"

	"github.com/crowdlink/crowdlink/internal/config"
)

// Config is the immutable crowd configuration, built once and injected.
type Config struct {
	Mode           Mode
	GroupsEnabled  bool
	Mapping        GroupMapping
	RemoveUnmapped bool
	Verbose        bool
}

// NewConfig builds a Config from the [crowd] settings. Problems with the settings
// are returned as diagnostics and never fail construction.
func NewConfig(settings config.Crowd) (Config, []Diagnostic) {
	mapping, diags := ParseGroupMapping(settings.GroupsMapping)

	mode, ok := ParseMode(settings.Mode)
	if !ok {
		diags = append(diags, Diagnostic{
			Level:   LevelWarn,
			Code:    CodeModeUnknown,
			Message: fmt.Sprintf("unknown crowd mode %q, using %s", settings.Mode, mode),
		})
	}

	return Config{
		Mode:           mode,
		GroupsEnabled:  settings.GroupsEnabled,
		Mapping:        mapping,
		RemoveUnmapped: settings.GroupsRemoveUnmappedGroups,
		Verbose:        settings.VerboseLog,
	}, diags
}
