package server

import "context"

// Server defines the lifecycle contract of the API server.
//
// Implementations block in [Server.RunServer] until a stop signal arrives or
// ctx is cancelled, then shut down gracefully.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
