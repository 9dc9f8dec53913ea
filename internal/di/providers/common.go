package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 10 * time.Second

	// importTimeout bounds loading a catalog file into a persistent backend.
	importTimeout = 5 * time.Minute
)
