package crowd

import (
	"context"
	"fmt"
	"strings"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

// GroupStore is the local group store. FindByName returns nil, nil for an unknown group.
type GroupStore interface {
	FindByName(ctx context.Context, name string) (*models.Group, error)
	AddMember(ctx context.Context, groupID uint, userID uint64) (bool, error)
}

// Synchronizer mirrors declared Crowd groups onto local group memberships.
type Synchronizer struct {
	groups         GroupStore
	mapping        GroupMapping
	removeUnmapped bool
	verbose        bool
}

// NewSynchronizer creates a Synchronizer from the immutable configuration.
func NewSynchronizer(cfg Config, groups GroupStore) *Synchronizer {
	return &Synchronizer{
		groups:         groups,
		mapping:        cfg.Mapping,
		removeUnmapped: cfg.RemoveUnmapped,
		verbose:        cfg.Verbose,
	}
}

// Sync adds userID to the local groups the declared Crowd groups map to.
// It never removes memberships and never fails, problems end up in the Report.
func (s *Synchronizer) Sync(ctx context.Context, userID uint64, declared []string) Report {
	var report Report

	if s.verbose {
		for _, e := range s.mapping.Entries() {
			s.trace(&report, userID, e.External, "", "mapping %s -> %s", e.External, strings.Join(e.Local, ","))
		}
	}

	for _, external := range declared {
		targets, mapped := s.mapping.Targets(external)

		if !mapped && s.removeUnmapped {
			s.trace(&report, userID, external, "", "crowd group %s is not mapped, skipping", external)
			continue
		}

		s.trace(&report, userID, external, "", "crowd group %s maps to %q", external, strings.Join(targets, ","))

		for _, local := range targets {
			s.addMember(ctx, &report, userID, external, local)
		}
	}

	return report
}

func (s *Synchronizer) addMember(ctx context.Context, report *Report, userID uint64, external, local string) {
	group, err := s.groups.FindByName(ctx, local)
	if err != nil {
		report.add(Diagnostic{
			Level:         LevelError,
			Code:          CodeGroupLookupFailed,
			ExternalGroup: external,
			LocalGroup:    local,
			UserID:        userID,
			Message:       fmt.Sprintf("crowd group %s: looking up local group %s failed", external, local),
			Err:           err,
		})

		return
	}

	if group == nil {
		report.add(Diagnostic{
			Level:         LevelError,
			Code:          CodeGroupNotFound,
			ExternalGroup: external,
			LocalGroup:    local,
			UserID:        userID,
			Message: fmt.Sprintf("crowd group %s mapped to local group %s which does not exist, user %d not added",
				external, local, userID),
		})

		return
	}

	added, err := s.groups.AddMember(ctx, group.ID, userID)
	if err != nil {
		report.add(Diagnostic{
			Level:         LevelError,
			Code:          CodeAddMemberFailed,
			ExternalGroup: external,
			LocalGroup:    local,
			UserID:        userID,
			Message:       fmt.Sprintf("crowd group %s: adding user %d to local group %s failed", external, userID, local),
			Err:           err,
		})

		return
	}

	if !added {
		s.trace(report, userID, external, local, "user %d already member of %s", userID, local)
		return
	}

	report.Added = append(report.Added, Membership{GroupID: group.ID, Group: group.Name, ExternalGroup: external})
	s.trace(report, userID, external, local, "user %d added to %s", userID, local)
}

func (s *Synchronizer) trace(report *Report, userID uint64, external, local, format string, args ...any) {
	if !s.verbose {
		return
	}

	report.add(Diagnostic{
		Level:         LevelInfo,
		Code:          CodeTrace,
		ExternalGroup: external,
		LocalGroup:    local,
		UserID:        userID,
		Message:       fmt.Sprintf(format, args...),
	})
}
