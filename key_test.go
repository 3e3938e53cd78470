// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"empty string", "", ""},
		{"int", 16, "16"},
		{"negative int", -3, "-3"},
		{"uint8", uint8(7), "7"},
		{"whole float", 16.0, "16"},
		{"fraction", 0.25, "0.25"},
		{"float32", float32(1.5), "1.5"},
		{"large float", 1e21, "1000000000000000000000"},
		{"bool", true, "true"},
		{"bytes", []byte("raw"), "raw"},
		{"nil", nil, "null"},
		{"stringer", time.Second, "1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}
