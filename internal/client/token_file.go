package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFile keeps the bearer token between client runs. An empty path
// disables persistence.
type tokenFile struct {
	path string
}

func (f tokenFile) load() (string, error) {
	if f.path == "" {
		return "", nil
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f tokenFile) save(token string) error {
	if f.path == "" {
		return nil
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f tokenFile) remove() error {
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
