// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformed is wrapped by every error caused by a persisted document that
// cannot be parsed.
var ErrMalformed = errors.New("malformed cache data")

// devTimeFormat is the human readable timestamp written in dev mode.
const devTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Entry is a stored value plus an optional expiration. A zero Expires means
// the entry never expires.
type Entry struct {
	Value   json.RawMessage
	Expires time.Time
}

// Expired reports whether e is past its expiration at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Table is the full key to Entry mapping held by one Cache.
type Table map[string]Entry

// wireEntry is the on-disk shape of an Entry. Expires holds either Unix
// milliseconds or, in dev mode, a timestamp string.
type wireEntry struct {
	Value   json.RawMessage `json:"value,omitempty"`
	Expires any             `json:"expires,omitempty"`
}

type wireEntryIn struct {
	Value   json.RawMessage `json:"value"`
	Expires json.RawMessage `json:"expires"`
}

// encodeTable serializes t. dev selects indentation and string timestamps.
func encodeTable(t Table, dev bool) ([]byte, error) {
	out := make(map[string]wireEntry, len(t))
	for k, e := range t {
		w := wireEntry{Value: e.Value}
		if !e.Expires.IsZero() {
			if dev {
				w.Expires = e.Expires.UTC().Format(devTimeFormat)
			} else {
				w.Expires = e.Expires.UnixMilli()
			}
		}
		out[k] = w
	}

	if dev {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// decodeTable parses a persisted document. Both timestamp forms are accepted
// whatever mode the cache runs in.
func decodeTable(b []byte) (Table, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var in map[string]*wireEntryIn
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t := make(Table, len(in))
	for k, w := range in {
		if w == nil {
			continue
		}
		exp, err := decodeExpires(w.Expires)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, k, err)
		}
		t[k] = Entry{Value: w.Value, Expires: exp}
	}
	return t, nil
}

func decodeExpires(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("expires is neither a number nor a timestamp")
	}
	if ms == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(int64(ms)), nil
}
