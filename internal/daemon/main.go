// Package daemon wires configuration, database, stores and the web service together.
package daemon

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/config"
	"github.com/crowdlink/crowdlink/internal/crowd"
	"github.com/crowdlink/crowdlink/internal/db"
	"github.com/crowdlink/crowdlink/internal/db/dsn"
	"github.com/crowdlink/crowdlink/internal/groups"
	"github.com/crowdlink/crowdlink/internal/linkstore"
	"github.com/crowdlink/crowdlink/internal/web"
)

// LinkStore is the link store plus the removal the CLI needs.
type LinkStore interface {
	linkstore.Store
	Delete(ctx context.Context, uid string) error
}

// Core holds the stores and the authenticator, shared by the daemon and the CLI.
type Core struct {
	Config   *config.Config
	DB       *gorm.DB
	Accounts *accounts.Store
	Groups   *groups.Store
	Links    LinkStore
	Auth     *crowd.Authenticator

	closers []io.Closer
}

// NewCore opens and migrates the database, seeds groups and builds the authenticator.
func NewCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(&cfg.DB, cfg.DevMode)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err
	}

	core := &Core{
		Config:   cfg,
		DB:       gdb,
		Accounts: accounts.New(gdb),
		Groups:   groups.New(gdb),
	}

	if sqlDB, err := gdb.DB(); err == nil {
		core.closers = append(core.closers, sqlDB)
	}

	if err = seed(ctx, cfg, core.Groups); err != nil {
		_ = core.Close()
		return nil, err
	}

	if core.Links, err = core.openLinkStore(); err != nil {
		_ = core.Close()
		return nil, err
	}

	crowdCfg, diags := crowd.NewConfig(cfg.Crowd)
	crowd.LogDiagnostics(diags)

	core.Auth = crowd.New(crowdCfg, core.Accounts, core.Groups, core.Links)

	log.Info().
		Str("mode", crowdCfg.Mode.String()).
		Bool("groups_enabled", crowdCfg.GroupsEnabled).
		Int("mapped_groups", crowdCfg.Mapping.Len()).
		Str("link_backend", cfg.Crowd.LinkBackend).
		Msg("crowd authenticator ready")

	return core, nil
}

// openLinkStore picks the link backend. The kv backend keeps its own table in the
// same database server, accessed through a gofiber storage driver.
func (c *Core) openLinkStore() (LinkStore, error) {
	if c.Config.Crowd.LinkBackend != config.LinkBackendKV {
		return linkstore.NewPluginStore(c.DB), nil
	}

	switch c.Config.DB.GormEngine {
	case config.GormEnginePostgres:
		storage := postgres.New(postgres.Config{
			ConnectionURI: dsn.PostgresURI(&c.Config.DB),
			Table:         c.Config.Crowd.LinkTable,
		})
		c.closers = append(c.closers, storage)

		return linkstore.NewKV(storage), nil
	case config.GormEngineMySQL:
		storage := mysql.New(mysql.Config{
			ConnectionURI: dsn.MySQL(&c.Config.DB),
			Table:         c.Config.Crowd.LinkTable,
		})
		c.closers = append(c.closers, storage)

		return linkstore.NewKV(storage), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrKVBackendNeedsServer, c.Config.DB.GormEngine)
	}
}

// Close releases the link storage and the database connection.
func (c *Core) Close() error {
	var firstErr error

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.closers = nil

	return firstErr
}

// Daemon represents the main application daemon.
type Daemon struct {
	core       *Core
	webService *web.Service
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	core, err := NewCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		core:       core,
		webService: web.New(cfg, core.Auth, core.Accounts),
	}, nil
}

// Start runs the web service until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(":" + strconv.Itoa(d.core.Config.Webserver.Port))

	if closeErr := d.core.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close stores")
	}

	return err
}
