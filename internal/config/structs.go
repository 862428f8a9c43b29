package config

import (
	"github.com/crowdlink/crowdlink/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Crowd     Crowd
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	CaseSensitive  bool   // strict routing of the intake endpoints
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	APIToken       string // shared bearer token the host sends on intake calls, empty disables the check
}

// Seed lists local entities created at startup when missing.
type Seed struct {
	Groups []string `toml:"groups"` // local groups the mapping may target
}
