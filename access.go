// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SetOption tunes a single Set.
type SetOption func(*setOptions)

type setOptions struct {
	ttl time.Duration
}

// WithTTL makes the entry expire ttl after it is set. Non-positive values
// mean no expiration.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
	}
}

// Get returns the JSON stored under key. An expired entry is deleted, and the
// table persisted, before Get reports it absent.
func (c *Cache) Get(ctx context.Context, key any) (json.RawMessage, bool, error) {
	k := Key(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}

	e, ok := t[k]
	if !ok {
		return nil, false, nil
	}

	if e.Expired(c.now()) {
		c.logger.WithField("key", k).Debug("entry expired")
		if err := c.del(ctx, k); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	// An entry persisted without a value holds nothing.
	if len(e.Value) == 0 {
		return nil, false, nil
	}
	return e.Value, true, nil
}

// Set stores value under key, persists the table and returns value. value
// must be JSON serializable; a json.RawMessage is stored verbatim.
func (c *Cache) Set(ctx context.Context, key, value any, opts ...SetOption) (any, error) {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value for %q: %w", Key(key), err)
	}

	e := Entry{Value: raw}
	if o.ttl > 0 {
		e.Expires = c.now().Add(o.ttl)
	}

	if err := c.put(ctx, Key(key), e); err != nil {
		return nil, err
	}
	return value, nil
}

// Del removes key and persists the table. Removing an absent key still
// persists.
func (c *Cache) Del(ctx context.Context, key any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.load(ctx); err != nil {
		return err
	}
	return c.del(ctx, Key(key))
}

func (c *Cache) put(ctx context.Context, k string, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.load(ctx)
	if err != nil {
		return err
	}
	t[k] = e
	return c.persist(ctx)
}

// del expects the table to be loaded and c.mu held.
func (c *Cache) del(ctx context.Context, k string) error {
	delete(c.table, k)
	return c.persist(ctx)
}
