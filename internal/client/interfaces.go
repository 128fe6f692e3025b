// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command in args and blocks until it is done.
	Run(ctx context.Context, args []string) error
}

// UI is the interactive part of the client.
type UI interface {
	// LoginFlow blocks until the user logs in and returns the username.
	LoginFlow(ctx context.Context) (string, error)

	// MainLoop blocks until the user quits. logout is true when the user
	// asked to end the session.
	MainLoop(ctx context.Context, username string) (logout bool, err error)
}
