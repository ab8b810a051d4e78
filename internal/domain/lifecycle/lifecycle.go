// Package lifecycle holds shared start/stop conventions for infra resources.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of any single resource.
const DefaultTimeout = 10 * time.Second
