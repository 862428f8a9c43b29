package daemon

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/crowdlink/crowdlink/internal/config"
	"github.com/crowdlink/crowdlink/internal/groups"
)

// ErrConfigNil is returned when the daemon is started without configuration.
var ErrConfigNil = errors.New("config is nil")

// seed creates the configured local groups that are still missing.
func seed(ctx context.Context, cfg *config.Config, store *groups.Store) error {
	for _, name := range cfg.Seed.Groups {
		if name == "" {
			continue
		}

		group, err := store.Ensure(ctx, name, "seeded from configuration")
		if err != nil {
			return err
		}

		log.Debug().Str("group", group.Name).Uint("id", group.ID).Msg("seed group ready")
	}

	return nil
}
