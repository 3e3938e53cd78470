// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cash is a small persistent key/value cache. Values are stored as
// JSON in a single file under string keys, may carry an expiration, and are
// served from memory after the file has been loaded once. Memoize wraps a
// function so its results are cached by argument.
//
//	c, err := cash.New(cash.Options{})
//	if err != nil {
//		return err
//	}
//	_, _ = c.Set(ctx, "hello", "world", cash.WithTTL(time.Hour))
//	v, ok, _ := cash.Fetch[string](ctx, c, "hello")
//
// A Cache is safe for use by multiple goroutines. Two Cache values pointed at
// the same file do not coordinate: whichever persists last wins.
package cash
