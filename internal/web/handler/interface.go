// Package handler holds what the web handlers share.
package handler

const (
	// ErrNilDepsFatalLogMsg is used if a handler is initialized with nil dependencies.
	ErrNilDepsFatalLogMsg = "router or handler dependencies are nil"
)
