// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"fmt"
	"strconv"
)

// Key returns the canonical string form of k used for table lookups. Every
// entry point runs its key through Key, so Get(16), Get(16.0) and Get("16")
// all address the same entry.
func Key(k any) string {
	switch v := k.(type) {
	case nil:
		return "null"
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
