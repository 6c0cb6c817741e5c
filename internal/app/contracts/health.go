package contracts

import "context"

// RecordsHealthService answers whether the backing records API is reachable.
// EnsureOnline is the save-path pre-flight; StartPoller keeps the cached
// answer warm in the background.
type RecordsHealthService interface {
	CheckHealth(ctx context.Context) error
	EnsureOnline(ctx context.Context) error
	StartPoller(ctx context.Context)
}
