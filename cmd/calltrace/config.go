package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the calltrace.toml layout.
type fileConfig struct {
	Events eventsConfig `toml:"events"`
	Demo   demoConfig   `toml:"demo"`
}

type eventsConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Format   string `toml:"format"`
	Output   string `toml:"output"`
	RingSize int64  `toml:"ring_size"`
}

type demoConfig struct {
	Fib int64 `toml:"fib"`
}

// findConfig walks from startDir toward the filesystem root looking
// for calltrace.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "calltrace.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads path, or searches upward when path is empty. A
// missing config is not an error; defaults apply.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return cfg, err
		}
		path = found
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}

// ringSize converts the decoded capacity, rejecting values that do
// not fit an int.
func (c eventsConfig) ringSize() (int, error) {
	if c.RingSize == 0 {
		return 0, nil
	}
	n, err := safecast.Conv[int](c.RingSize)
	if err != nil {
		return 0, fmt.Errorf("ring_size out of range: %w", err)
	}
	return n, nil
}

// fibDepth converts the demo workload depth with a sane default.
func (c demoConfig) fibDepth() (int, error) {
	if c.Fib == 0 {
		return 4, nil
	}
	n, err := safecast.Conv[int](c.Fib)
	if err != nil {
		return 0, fmt.Errorf("demo fib out of range: %w", err)
	}
	return n, nil
}
