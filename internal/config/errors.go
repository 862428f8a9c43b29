package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not one of mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrUnknownLinkBackend error if config crowd.link_backend is not db or kv.
	ErrUnknownLinkBackend = errors.New("toml config crowd.link_backend must be db or kv")

	// ErrKVBackendNeedsServer error if the kv link backend is combined with sqlite.
	ErrKVBackendNeedsServer = errors.New("toml config crowd.link_backend kv needs a mysql or postgres database")
)
