package crowd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crowdlink/crowdlink/internal/linkstore"
)

// Authenticator is the entry point the host calls around a Crowd login.
// It applies logging and metrics, the resolver and synchronizer stay free of side effects.
type Authenticator struct {
	cfg      Config
	resolver Resolver
	sync     *Synchronizer
}

// New creates an Authenticator for cfg.
func New(cfg Config, accts AccountStore, groups GroupStore, links linkstore.Store) *Authenticator {
	registerMetrics()

	return &Authenticator{
		cfg:      cfg,
		resolver: NewResolver(cfg.Mode, accts, links),
		sync:     NewSynchronizer(cfg, groups),
	}
}

// Config returns the configuration the Authenticator was built with.
func (a *Authenticator) Config() Config {
	return a.cfg
}

// ResolveAccount maps id to a local account, or tells the caller to create one.
func (a *Authenticator) ResolveAccount(ctx context.Context, id Identity) (Result, error) {
	if err := id.Validate(); err != nil {
		return Result{}, err
	}

	if a.cfg.Verbose {
		log.Warn().Interface("identity", id).Str("mode", a.cfg.Mode.String()).Msg("crowd verbose log")
	}

	res, err := a.resolver.Resolve(ctx, id)
	if err != nil {
		resolutions.WithLabelValues(a.cfg.Mode.String(), outcomeError).Inc()
		log.Error().Err(err).Str("uid", id.UID).Msg("crowd account resolution failed")

		return Result{}, err
	}

	resolutions.WithLabelValues(a.cfg.Mode.String(), string(res.Outcome)).Inc()

	return res, nil
}

// OnAccountCreated records the link for an account created after a pending resolution.
func (a *Authenticator) OnAccountCreated(ctx context.Context, userID uint64, pendingUID string) error {
	if err := a.resolver.AccountCreated(ctx, userID, pendingUID); err != nil {
		log.Error().Err(err).Str("uid", pendingUID).Uint64("user_id", userID).Msg("crowd link write failed")
		return err
	}

	return nil
}

// SyncGroups mirrors the declared groups onto local groups when group sync is enabled.
func (a *Authenticator) SyncGroups(ctx context.Context, userID uint64, declared []string) Report {
	if !a.cfg.GroupsEnabled {
		return Report{}
	}

	report := a.sync.Sync(ctx, userID, declared)
	LogDiagnostics(report.Diagnostics)

	for _, d := range report.Problems() {
		syncDiagnostics.WithLabelValues(d.Code).Inc()
	}

	return report
}

// Authenticate resolves id and, when it maps to an existing account, synchronizes its groups.
func (a *Authenticator) Authenticate(ctx context.Context, id Identity) (Result, Report, error) {
	res, err := a.ResolveAccount(ctx, id)
	if err != nil {
		return Result{}, Report{}, err
	}

	if res.Account == nil {
		return res, Report{}, nil
	}

	return res, a.SyncGroups(ctx, res.Account.ID, id.Groups), nil
}

// AfterCreateAccount completes the login of a freshly created account: it writes
// the pending link and synchronizes the groups of id.
func (a *Authenticator) AfterCreateAccount(ctx context.Context, userID uint64, id Identity, pendingUID string) (Report, error) {
	if err := a.OnAccountCreated(ctx, userID, pendingUID); err != nil {
		return Report{}, err
	}

	return a.SyncGroups(ctx, userID, id.Groups), nil
}

// LogDiagnostics writes diagnostics to the global logger at their level.
func LogDiagnostics(diags []Diagnostic) {
	for _, d := range diags {
		level := zerolog.InfoLevel

		switch d.Level {
		case LevelWarn:
			level = zerolog.WarnLevel
		case LevelError:
			level = zerolog.ErrorLevel
		case LevelInfo:
		}

		ev := log.WithLevel(level).Str("code", d.Code)
		if d.ExternalGroup != "" {
			ev = ev.Str("crowd_group", d.ExternalGroup)
		}

		if d.LocalGroup != "" {
			ev = ev.Str("local_group", d.LocalGroup)
		}

		if d.UserID != 0 {
			ev = ev.Uint64("user_id", d.UserID)
		}

		ev.Err(d.Err).Msg(d.Message)
	}
}
