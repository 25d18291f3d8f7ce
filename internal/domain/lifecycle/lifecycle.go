// Package lifecycle holds process-wide lifecycle settings shared by servers and stores.
package lifecycle

import "time"

// DefaultTimeout bounds start-up pings and graceful shutdowns.
const DefaultTimeout = 10 * time.Second
