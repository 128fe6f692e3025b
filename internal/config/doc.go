// Package config provides configuration loading, merging, and validation
// facilities for the task manager server and its terminal client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file (exported into the process environment)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Fields left empty by every source fall back to built-in defaults.
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
