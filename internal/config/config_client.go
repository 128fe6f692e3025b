package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// TokenFile is the file where the session token is persisted.
	TokenFile string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// HashKey is the optional HMAC key used to sign request bodies.
	HashKey string
	// LogLevel is the zerolog level of the client log file.
	LogLevel string
	// Command is the sub-command with its arguments, e.g. ["add", "Buy milk"].
	Command []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// Unlike [GetStructuredConfig] it does not require server-only settings such
// as the database DSN or the token sign key.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			TokenFile:      cfg.Adapter.TokenFile,
		},
		HashKey:  cfg.App.HashKey,
		LogLevel: cfg.App.LogLevel,
		Command:  cfg.Args,
	}

	return clientCfg, clientCfg.validate()
}
