// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil locates the per-user cache file used by `cash --global`.
package cacheutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// GlobalFilename is the file name of the per-user cache.
const GlobalFilename = "cash.json"

// Dir resolves the base cache directory.
// Precedence:
//  1. CASH_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/cash
//
// Returns ("", false) if a base cannot be resolved.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("CASH_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "cash"), true
	}
	return "", false
}

// EnsureBaseDir creates the base cache directory and returns its path.
func EnsureBaseDir() (string, error) {
	base, ok := Dir()
	if !ok {
		return "", fmt.Errorf("no user cache directory; set CASH_CACHE_DIR")
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, nil
}

// GlobalFile returns the path of the per-user cache file, creating its
// directory as needed.
func GlobalFile() (string, error) {
	base, err := EnsureBaseDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(base, GlobalFilename)
	log.Debugf("using global cache file %s", p)
	return p, nil
}
