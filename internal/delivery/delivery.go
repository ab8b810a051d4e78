// Package delivery defines the transport-agnostic server contract.
package delivery

import "context"

// Delivery is a long-running server started by the application entrypoint.
type Delivery interface {
	// Serve blocks, serving requests until shutdown.
	Serve(ctx context.Context) error
}
