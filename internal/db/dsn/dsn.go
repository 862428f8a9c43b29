// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/crowdlink/crowdlink/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// For sqlite the database name is the file path.
func Create(dbCfg *config.DB) string {
	switch dbCfg.GormEngine {
	case config.GormEnginePostgres:
		return Postgres(dbCfg)
	case config.GormEngineSQLite:
		return dbCfg.Name
	default:
		return MySQL(dbCfg)
	}
}

// MySQL builds a go-sql-driver style DSN.
func MySQL(dbCfg *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
		dbCfg.Extras,
	)

	return out
}

// Postgres builds a libpq keyword/value DSN. Extras are appended verbatim.
func Postgres(dbCfg *config.DB) string {
	parts := []string{
		"host=" + dbCfg.Host,
		fmt.Sprintf("port=%d", dbCfg.Port),
		"user=" + dbCfg.User,
		"password=" + dbCfg.Password,
		"dbname=" + dbCfg.Name,
	}

	if dbCfg.Extras != "" {
		parts = append(parts, dbCfg.Extras)
	}

	return strings.Join(parts, " ")
}

// PostgresURI builds a postgres:// connection URI, used by the key/value storage backend.
func PostgresURI(dbCfg *config.DB) string {
	out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += "?" + dbCfg.Extras
	}

	return out
}
