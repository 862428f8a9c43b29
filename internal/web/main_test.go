package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/config"
	"github.com/crowdlink/crowdlink/internal/crowd"
	"github.com/crowdlink/crowdlink/internal/db"
	"github.com/crowdlink/crowdlink/internal/groups"
	"github.com/crowdlink/crowdlink/internal/linkstore"
	crowdhandler "github.com/crowdlink/crowdlink/internal/web/handler/crowd"
)

const testToken = "secret"

func newTestService(t *testing.T, settings config.Crowd) (*Service, *groups.Store) {
	t.Helper()

	gdb, err := db.Open(&config.DB{GormEngine: config.GormEngineSQLite, Name: ":memory:"}, false)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	groupStore := groups.New(gdb)
	for _, name := range []string{"Engineers", "Staff", "HR"} {
		_, err := groupStore.Ensure(context.Background(), name, "")
		require.NoError(t, err)
	}

	cfg, _ := crowd.NewConfig(settings)
	accountStore := accounts.New(gdb)
	auth := crowd.New(cfg, accountStore, groupStore, linkstore.NewPluginStore(gdb))

	appCfg := &config.Config{
		DevMode: true,
		Title:   "crowdlink test",
		Webserver: config.Webserver{
			Port:     8080,
			APIToken: testToken,
		},
	}

	return New(appCfg, auth, accountStore), groupStore
}

func do(t *testing.T, s *Service, method, path, body, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.App.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)

	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func TestCheckAlive(t *testing.T) {
	s, _ := newTestService(t, config.Crowd{})

	code, body := do(t, s, http.MethodGet, CheckAlivePath, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", string(body))

	s.alive.Store(false)
	code, _ = do(t, s, http.MethodGet, CheckAlivePath, "", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestMetrics(t *testing.T) {
	s, _ := newTestService(t, config.Crowd{})

	code, body := do(t, s, http.MethodGet, MetricsPath, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestAuthenticateRequiresToken(t *testing.T) {
	s, _ := newTestService(t, config.Crowd{})

	code, body := do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AuthenticatePath, `{"uid":"u1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))
}

func TestAuthenticateValidation(t *testing.T) {
	s, _ := newTestService(t, config.Crowd{})

	for _, body := range []string{`{"name":"no uid"}`, `{"uid":"u1","email":"not-an-email"}`, `{`} {
		code, _ := do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AuthenticatePath, body, testToken)
		assert.Equal(t, http.StatusBadRequest, code, body)
	}
}

func TestSeparatedFlowOverHTTP(t *testing.T) {
	s, groupStore := newTestService(t, config.Crowd{
		Mode:                       config.CrowdModeSeparated,
		GroupsEnabled:              true,
		GroupsMapping:              []string{"eng:Engineers,Staff", "hr:HR"},
		GroupsRemoveUnmappedGroups: true,
	})

	event := `{"uid":"u1","name":"User One","email":"u1@x.com","groups":["eng"]}`

	code, body := do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AuthenticatePath, event, testToken)
	require.Equal(t, http.StatusOK, code, string(body))

	var authResp crowdhandler.AuthenticateResponse
	require.NoError(t, json.Unmarshal(body, &authResp))
	assert.Nil(t, authResp.Result.Account)
	assert.Equal(t, "u1", authResp.Result.PendingUID)
	assert.True(t, authResp.Result.EmailVerified)
	assert.Equal(t, crowd.OutcomePending, authResp.Result.Outcome)

	code, body = do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AccountsPath, event, testToken)
	require.Equal(t, http.StatusCreated, code, string(body))

	var created crowdhandler.CreateAccountResponse
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.Account)
	assert.Equal(t, "u1", created.Account.Username)
	assert.Len(t, created.Groups.Added, 2)

	memberOf, err := groupStore.GroupsForUser(context.Background(), created.Account.ID)
	require.NoError(t, err)
	assert.Len(t, memberOf, 2)

	// the account exists now: authenticate links, creating again conflicts
	code, body = do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AuthenticatePath, event, testToken)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &authResp))
	require.NotNil(t, authResp.Result.Account)
	assert.Equal(t, created.Account.ID, authResp.Result.Account.ID)
	assert.Equal(t, crowd.OutcomeLinked, authResp.Result.Outcome)

	code, _ = do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AccountsPath, event, testToken)
	assert.Equal(t, http.StatusConflict, code)
}

func TestMixedFlowOverHTTP(t *testing.T) {
	s, _ := newTestService(t, config.Crowd{Mode: config.CrowdModeMixed})

	code, body := do(t, s, http.MethodPost, crowdhandler.Path+crowdhandler.AuthenticatePath,
		`{"uid":"u1","name":"User One","email":"u1@x.com"}`, testToken)
	require.Equal(t, http.StatusOK, code, string(body))

	var authResp crowdhandler.AuthenticateResponse
	require.NoError(t, json.Unmarshal(body, &authResp))
	require.NotNil(t, authResp.Result.Account)
	assert.Equal(t, "u1", authResp.Result.Account.Username)
	assert.Equal(t, crowd.OutcomeCreated, authResp.Result.Outcome)
	assert.Empty(t, authResp.Result.PendingUID)
}
