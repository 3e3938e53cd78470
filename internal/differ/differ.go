// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ renders the difference between two stored JSON values.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff returns an ASCII diff from before to after and whether they differ.
// Either side may be any JSON value; a nil before is treated as absent.
// Values are wrapped in an object because the differ compares objects.
func Diff(before, after json.RawMessage, color bool) (string, bool, error) {
	left, err := wrap(before)
	if err != nil {
		return "", false, fmt.Errorf("failed to read previous value: %w", err)
	}
	right, err := wrap(after)
	if err != nil {
		return "", false, fmt.Errorf("failed to read new value: %w", err)
	}

	d := gojsondiff.New().CompareObjects(left, right)
	if !d.Modified() {
		return "", false, nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", true, fmt.Errorf("failed to format diff: %w", err)
	}
	return out, true, nil
}

func wrap(raw json.RawMessage) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	if len(raw) == 0 {
		return m, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	m["value"] = v
	return m, nil
}
