// Package crowd reconciles Atlassian Crowd identities with local forum accounts.
//
// An authentication event carries a Crowd uid, a display name, an email and the
// groups Crowd declares for the user. The package decides which local account the
// event maps to and mirrors the declared groups onto local groups.
//
// # Linking modes
//
// Separated keeps Crowd and local accounts apart. A uid reaches a local account only
// through a stored link, or, until the first link is written, through an exact email
// match. When neither exists the caller creates the account and reports it back
// with OnAccountCreated, which writes the link.
//
// Mixed shares the username namespace: the uid is the local username and a missing
// account is created inline during authentication.
//
// # Group synchronization
//
// The group mapping is a list of "<crowd group>:<local group>,<local group>" strings.
// Synchronization only ever adds memberships. Problems such as a missing local group
// are collected as diagnostics in the returned Report and never abort the run.
//
// Example usage:
//
//	cfg, diags := crowd.NewConfig(settings)
//	a := crowd.New(cfg, accounts.New(db), groups.New(db), linkstore.NewPluginStore(db))
//	res, err := a.ResolveAccount(ctx, crowd.NewIdentity("jdoe", "John Doe", "jdoe@example.com", []string{"crowd-eng"}))
package crowd
