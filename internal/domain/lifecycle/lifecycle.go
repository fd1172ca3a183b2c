// Package lifecycle holds the shared bounds for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook.
const DefaultTimeout = 15 * time.Second
