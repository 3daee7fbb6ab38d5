// Package delivery defines the contract every transport implementation fulfils.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker, etc.) managed
// by the application lifecycle.
type Delivery interface {
	// Serve blocks until the transport stops or the context is cancelled.
	Serve(ctx context.Context) error
}
