// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Extract returns the printable form of raw, narrowed to path when one is
// given. Strings print without quotes; everything else prints as JSON. The
// boolean is false when path matches nothing.
func Extract(raw json.RawMessage, path string) (string, bool) {
	var res gjson.Result
	if path == "" {
		res = gjson.ParseBytes(raw)
	} else {
		res = gjson.GetBytes(raw, path)
	}

	if !res.Exists() {
		return "", false
	}
	if res.Type == gjson.String {
		return res.String(), true
	}
	return res.Raw, true
}
