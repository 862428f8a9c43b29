package config

const (
	// GormEngineMySQL selects the gorm mysql driver.
	GormEngineMySQL = "mysql"
	// GormEnginePostgres selects the gorm postgres driver.
	GormEnginePostgres = "postgres"
	// GormEngineSQLite selects the pure go sqlite driver.
	GormEngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or file path for sqlite
	GormEngine string
}
