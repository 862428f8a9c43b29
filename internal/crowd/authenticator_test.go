package crowd

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

func newTestAuthenticator(t *testing.T, mode Mode, groupsEnabled bool) (*Authenticator, *fakeAccounts, *fakeLinks, *fakeGroups) {
	t.Helper()

	mapping, diags := ParseGroupMapping([]string{"eng:Engineers,Staff", "hr:HR"})
	require.Empty(t, diags)

	accts := newFakeAccounts()
	links := newFakeLinks()
	groups := newFakeGroups("Engineers", "Staff", "HR")

	cfg := Config{
		Mode:           mode,
		GroupsEnabled:  groupsEnabled,
		Mapping:        mapping,
		RemoveUnmapped: true,
		Verbose:        true,
	}

	return New(cfg, accts, groups, links), accts, links, groups
}

func TestAuthenticatorSeparatedFlow(t *testing.T) {
	ctx := context.Background()
	a, accts, links, groups := newTestAuthenticator(t, ModeSeparated, true)
	id := NewIdentity("u1", "User One", "u1@x.com", []string{"eng"})

	res, report, err := a.Authenticate(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, res.Account)
	assert.Empty(t, report.Added)

	created := accts.add(models.User{Username: res.Username, Email: res.Email})

	report, err = a.AfterCreateAccount(ctx, created.ID, id, res.PendingUID)
	require.NoError(t, err)
	assert.Len(t, report.Added, 2)
	assert.Equal(t, created.ID, links.links["u1"])
	assert.Equal(t, map[string]bool{"Engineers": true, "Staff": true}, groups.membership(created.ID))

	res, report, err = a.Authenticate(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Account)
	assert.Equal(t, created.ID, res.Account.ID)
	assert.Empty(t, report.Added)
}

func TestAuthenticatorMixedSyncsOnLogin(t *testing.T) {
	ctx := context.Background()
	a, _, _, groups := newTestAuthenticator(t, ModeMixed, true)

	res, report, err := a.Authenticate(ctx, NewIdentity("u1", "", "", []string{"hr"}))
	require.NoError(t, err)
	require.NotNil(t, res.Account)
	assert.Equal(t, map[string]bool{"HR": true}, groups.membership(res.Account.ID))
	require.Len(t, report.Added, 1)
}

func TestAuthenticatorGroupsDisabled(t *testing.T) {
	ctx := context.Background()
	a, _, _, groups := newTestAuthenticator(t, ModeMixed, false)

	res, report, err := a.Authenticate(ctx, NewIdentity("u1", "", "", []string{"eng"}))
	require.NoError(t, err)
	assert.Empty(t, report.Added)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, groups.membership(res.Account.ID))

	assert.Empty(t, a.SyncGroups(ctx, res.Account.ID, []string{"eng"}).Added)
}

func TestAuthenticatorRejectsEmptyUID(t *testing.T) {
	a, _, _, _ := newTestAuthenticator(t, ModeSeparated, true)

	_, err := a.ResolveAccount(context.Background(), NewIdentity("", "", "", nil))
	require.ErrorIs(t, err, ErrUIDEmpty)
}

func TestAuthenticatorStoreFailure(t *testing.T) {
	ctx := context.Background()
	a, _, links, _ := newTestAuthenticator(t, ModeSeparated, true)
	errDown := errors.New("down")

	before := counterValue(t, resolutions.WithLabelValues("separated", outcomeError))

	links.getErr = errDown
	_, _, err := a.Authenticate(ctx, NewIdentity("u1", "", "", nil))
	require.ErrorIs(t, err, ErrStoreRead)
	assert.InDelta(t, before+1, counterValue(t, resolutions.WithLabelValues("separated", outcomeError)), 0)

	links.getErr = nil
	links.writeErr = errDown
	_, err = a.AfterCreateAccount(ctx, 1, NewIdentity("u1", "", "", nil), "u1")
	require.ErrorIs(t, err, ErrStoreWrite)
}

func TestAuthenticatorCountsDiagnostics(t *testing.T) {
	ctx := context.Background()
	a, _, _, groups := newTestAuthenticator(t, ModeMixed, true)
	delete(groups.groups, "Staff")

	before := counterValue(t, syncDiagnostics.WithLabelValues(CodeGroupNotFound))

	report := a.SyncGroups(ctx, 3, []string{"eng"})
	assert.Len(t, report.Problems(), 1)
	assert.InDelta(t, before+1, counterValue(t, syncDiagnostics.WithLabelValues(CodeGroupNotFound)), 0)
}

func TestLogDiagnosticsHandlesAllLevels(t *testing.T) {
	assert.NotPanics(t, func() {
		LogDiagnostics([]Diagnostic{
			{Level: LevelInfo, Code: CodeTrace, Message: "trace"},
			{Level: LevelWarn, Code: CodeMappingMalformed, Message: "warn"},
			{Level: LevelError, Code: CodeAddMemberFailed, LocalGroup: "HR", UserID: 1, Err: errors.New("x"), Message: "err"},
		})
	})
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	require.NoError(t, c.Write(&m))

	return m.GetCounter().GetValue()
}
