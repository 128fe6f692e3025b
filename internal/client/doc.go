// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It dispatches sub-commands (register, login, tasks, add, ...) to the REST
// adapter, keeps the session token in a file between runs and starts the
// terminal UI for the "ui" command.
package client
