package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crowdlink/crowdlink/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.DB
		expected string
	}{
		{
			name: "mysql",
			cfg: config.DB{
				GormEngine: config.GormEngineMySQL,
				Host:       "db", Port: 3306, User: "crowd", Password: "secret", Name: "crowdlink",
				Extras: "parseTime=true",
			},
			expected: "crowd:secret@tcp(db:3306)/crowdlink?parseTime=true",
		},
		{
			name: "postgres",
			cfg: config.DB{
				GormEngine: config.GormEnginePostgres,
				Host:       "db", Port: 5432, User: "crowd", Password: "secret", Name: "crowdlink",
				Extras: "sslmode=disable",
			},
			expected: "host=db port=5432 user=crowd password=secret dbname=crowdlink sslmode=disable",
		},
		{
			name:     "sqlite uses the file name",
			cfg:      config.DB{GormEngine: config.GormEngineSQLite, Name: "crowdlink.db"},
			expected: "crowdlink.db",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Create(&tc.cfg))
		})
	}
}

func TestPostgresURI(t *testing.T) {
	cfg := config.DB{Host: "db", Port: 5432, User: "crowd", Password: "secret", Name: "crowdlink"}
	assert.Equal(t, "postgres://crowd:secret@db:5432/crowdlink", PostgresURI(&cfg))

	cfg.Extras = "sslmode=disable"
	assert.Equal(t, "postgres://crowd:secret@db:5432/crowdlink?sslmode=disable", PostgresURI(&cfg))
}
