// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Func is a function that can be memoized. Functions of several arguments
// take them as a struct or array A.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// TTL decides how long a memoized result lives. The zero value means the
// result never expires.
type TTL[R any] struct {
	fixed time.Duration
	fn    func(R) time.Duration
}

// FixedTTL expires every result d after it is computed.
func FixedTTL[R any](d time.Duration) TTL[R] {
	return TTL[R]{fixed: d}
}

// TTLFrom derives each result's ttl from the result itself.
func TTLFrom[R any](fn func(R) time.Duration) TTL[R] {
	return TTL[R]{fn: fn}
}

func (t TTL[R]) resolve(result R) time.Duration {
	if t.fn != nil {
		return t.fn(result)
	}
	return t.fixed
}

// MemoizeOptions configures Memoize.
type MemoizeOptions[A, R any] struct {
	// Serialize derives the cache key from the argument. The default is
	// Key(arg), which only distinguishes arguments whose string forms
	// differ; functions of several arguments should supply their own.
	Serialize func(A) string
	TTL       TTL[R]
}

// Memoize wraps fn so that a call whose key already holds a live, non-null
// value returns it without running fn. On a miss fn runs, and its result is
// stored with the resolved ttl and returned. Errors from fn are returned and
// nothing is stored. Concurrent misses for the same key share one call.
func Memoize[A, R any](c *Cache, fn Func[A, R], opts MemoizeOptions[A, R]) Func[A, R] {
	serialize := opts.Serialize
	if serialize == nil {
		serialize = func(arg A) string { return Key(arg) }
	}

	// Each wrapper has its own group so wrappers sharing a key never share
	// results.
	var flight singleflight.Group

	return func(ctx context.Context, arg A) (R, error) {
		var zero R
		key := serialize(arg)

		if v, ok, err := lookup[R](ctx, c, key); err != nil || ok {
			return v, err
		}

		res, err, _ := flight.Do(key, func() (any, error) {
			// Another caller may have filled the key while we waited.
			if v, ok, err := lookup[R](ctx, c, key); err != nil || ok {
				return v, err
			}

			v, err := fn(ctx, arg)
			if err != nil {
				return zero, err
			}
			if _, err := c.Set(ctx, key, v, WithTTL(opts.TTL.resolve(v))); err != nil {
				return zero, err
			}
			return v, nil
		})
		if err != nil {
			return zero, err
		}
		r, ok := res.(R)
		if !ok && res != nil {
			return zero, fmt.Errorf("memoized %q: unexpected result type %T", key, res)
		}
		return r, nil
	}
}

// lookup reads key as an R. A stored JSON null is reported as a miss.
func lookup[R any](ctx context.Context, c *Cache, key string) (R, bool, error) {
	var v R
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok || isNull(raw) {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode memoized %q: %w", key, err)
	}
	return v, true, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
