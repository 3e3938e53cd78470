// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
)

// DefaultFilename is the dotfile used when Options.Filepath is empty. It is
// resolved against the working directory at construction time.
const DefaultFilename = ".cash"

// Options configures a Cache. The zero value is usable.
type Options struct {
	// Filepath is the storage location. Defaults to DefaultFilename in the
	// current working directory.
	Filepath string
	// Encoding is the text encoding of the storage file. Defaults to utf8.
	Encoding string
	// Dev writes indented JSON with human readable timestamps. It changes
	// presentation only.
	Dev bool
	// Store replaces the file store built from Filepath and Encoding.
	Store Store
	// Clock is the wall-clock source. Defaults to time.Now.
	Clock func() time.Time
	// Logger receives debug traces. Defaults to the apex/log package logger.
	Logger log.Interface
}

// Cache is a persistent key/value table. The table is read from the store the
// first time an operation needs it and stays in memory until Reset.
type Cache struct {
	mu     sync.Mutex
	table  Table
	loaded bool

	store  Store
	dev    bool
	now    func() time.Time
	logger log.Interface
}

// New builds a Cache from opts. Nothing is read until the first operation.
func New(opts Options) (*Cache, error) {
	c := &Cache{
		store:  opts.Store,
		dev:    opts.Dev,
		now:    opts.Clock,
		logger: opts.Logger,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.Log
	}

	if c.store == nil {
		path := opts.Filepath
		if path == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve working directory: %w", err)
			}
			path = filepath.Join(wd, DefaultFilename)
		}
		fsStore, err := NewFileStore(path, opts.Encoding)
		if err != nil {
			return nil, err
		}
		c.store = fsStore
	}

	return c, nil
}

// load returns the in-memory table, reading it from the store on first use.
// A missing document yields an empty table. Callers hold c.mu.
func (c *Cache) load(ctx context.Context) (Table, error) {
	if c.loaded {
		return c.table, nil
	}

	b, err := c.store.Read(ctx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.table = Table{}
	case err != nil:
		return nil, fmt.Errorf("failed to read cache: %w", err)
	default:
		t, err := decodeTable(b)
		if err != nil {
			return nil, err
		}
		c.table = t
	}

	c.loaded = true
	c.logger.WithField("entries", len(c.table)).Debug("cache loaded")
	return c.table, nil
}

// persist overwrites the store with the whole table. The in-memory table is
// left as is when the write fails. Callers hold c.mu.
func (c *Cache) persist(ctx context.Context) error {
	b, err := encodeTable(c.table, c.dev)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := c.store.Write(ctx, b); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	c.logger.WithField("bytes", len(b)).Debug("cache persisted")
	return nil
}

// Reset empties the table and removes the backing document. A document that
// does not exist is not an error. The next operation starts from scratch.
func (c *Cache) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table = Table{}
	c.loaded = true

	if err := c.store.Remove(ctx); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	c.logger.Debug("cache reset")
	return nil
}

// Entries returns a copy of the table, expired entries included. It never
// deletes anything.
func (c *Cache) Entries(ctx context.Context) (Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(t), nil
}

// Fetch is Get followed by decoding the stored JSON into T.
func Fetch[T any](ctx context.Context, c *Cache, key any) (T, bool, error) {
	var v T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %q: %w", Key(key), err)
	}
	return v, true, nil
}

// Put is Set with a typed value.
func Put[T any](ctx context.Context, c *Cache, key any, value T, opts ...SetOption) (T, error) {
	if _, err := c.Set(ctx, key, value, opts...); err != nil {
		return value, err
	}
	return value, nil
}
