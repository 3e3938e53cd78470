// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cashgo/internal/meta"
)

type testEnv struct {
	dir  string
	file string
	now  time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, v := range []string{"CASH_FILE", "CASH_ENCODING", "CASH_DEV"} {
		// Setenv restores the original value on cleanup.
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}
	dir := t.TempDir()
	return &testEnv{
		dir:  dir,
		file: filepath.Join(dir, ".cash"),
		now:  time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC),
	}
}

// run executes the app with args after the subcommand name, injecting --file.
func (e *testEnv) run(t *testing.T, sub string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(meta.Meta{
		StartingDir: e.dir,
		Stdout:      &stdout,
		Stderr:      &stderr,
		Clock:       func() time.Time { return e.now },
	})
	argv := append([]string{"cash", sub, "--file", e.file}, args...)
	err := app.Run(context.Background(), argv)
	return stdout.String(), err
}

func TestSetGet(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "set", "greeting", "hello")
	require.NoError(t, err)

	out, err := e.run(t, "get", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestSet_JSONAndPath(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "set", "svc", `{"name":"web","ports":[80,443]}`)
	require.NoError(t, err)

	out, err := e.run(t, "get", "--path", "ports.1", "svc")
	require.NoError(t, err)
	assert.Equal(t, "443\n", out)

	_, err = e.run(t, "get", "--path", "nope", "svc")
	assert.ErrorContains(t, err, "not found")

	// --string keeps valid JSON as text.
	_, err = e.run(t, "set", "--string", "num", "42")
	require.NoError(t, err)
	b, err := os.ReadFile(e.file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"num":{"value":"42"}`)
}

func TestGet_Missing(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "get", "nothing")
	assert.ErrorContains(t, err, "nothing: not found")
}

func TestSet_TTL(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "set", "--ttl", "1s", "k", "v")
	require.NoError(t, err)

	out, err := e.run(t, "get", "k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", out)

	e.now = e.now.Add(5 * time.Second)
	_, err = e.run(t, "get", "k")
	assert.ErrorContains(t, err, "not found")
}

func TestSet_Diff(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "set", "cfg", `{"replicas":1}`)
	require.NoError(t, err)

	out, err := e.run(t, "set", "--diff", "cfg", `{"replicas":3}`)
	require.NoError(t, err)
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "replicas")

	out, err = e.run(t, "set", "--diff", "cfg", `{"replicas":3}`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDelAndReset(t *testing.T) {
	e := newTestEnv(t)

	for _, k := range []string{"a", "b", "c"} {
		_, err := e.run(t, "set", k, "1")
		require.NoError(t, err)
	}

	_, err := e.run(t, "del", "a", "b", "missing")
	require.NoError(t, err)

	_, err = e.run(t, "get", "a")
	assert.ErrorContains(t, err, "not found")
	out, err := e.run(t, "get", "c")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = e.run(t, "reset")
	require.NoError(t, err)
	_, err = os.Stat(e.file)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// Nothing left to remove is fine.
	_, err = e.run(t, "reset")
	require.NoError(t, err)
}

func TestLs(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "set", "b", "2")
	require.NoError(t, err)
	_, err = e.run(t, "set", "--ttl", "1m", "a", "1")
	require.NoError(t, err)
	_, err = e.run(t, "set", "--ttl", "1s", "old", "0")
	require.NoError(t, err)

	e.now = e.now.Add(10 * time.Second)

	out, err := e.run(t, "ls", "-o", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["key"])
	assert.Equal(t, "b", rows[1]["key"])

	out, err = e.run(t, "ls", "--expired", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 3)

	out, err = e.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "50 seconds from now")
	assert.Contains(t, out, "never")

	_, err = e.run(t, "ls", "-o", "xml")
	assert.Error(t, err)
}

func TestRun_Memoized(t *testing.T) {
	e := newTestEnv(t)
	counter := filepath.Join(e.dir, "count")
	script := "echo x >> " + counter + "; echo out"

	for range 2 {
		out, err := e.run(t, "run", "--ttl", "1h", "--", "sh", "-c", script)
		require.NoError(t, err)
		assert.Equal(t, "out\n", out)
	}

	b, err := os.ReadFile(counter)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "x"))

	e.now = e.now.Add(2 * time.Hour)
	_, err = e.run(t, "run", "--ttl", "1h", "--", "sh", "-c", script)
	require.NoError(t, err)
	b, err = os.ReadFile(counter)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "x"))
}

func TestRun_FailureNotCached(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run(t, "run", "--", "sh", "-c", "exit 3")
	assert.Error(t, err)

	_, err = os.Stat(e.file)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestArgCounts(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		sub  string
		args []string
	}{
		{"get", nil},
		{"get", []string{"a", "b"}},
		{"set", []string{"only-key"}},
		{"del", nil},
		{"reset", []string{"extra"}},
		{"run", nil},
	}

	for _, tt := range tests {
		t.Run(tt.sub+"/"+strings.Join(tt.args, ","), func(t *testing.T) {
			_, err := e.run(t, tt.sub, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in       string
		asString bool
		want     string
	}{
		{`42`, false, `42`},
		{`42`, true, `"42"`},
		{`{"a":1}`, false, `{"a":1}`},
		{`hello`, false, `"hello"`},
		{`true`, false, `true`},
		{``, false, `""`},
	}

	for _, tt := range tests {
		got, err := ParseValue(tt.in, tt.asString)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("json"))
	assert.Error(t, OutputValidator("csv"))
	assert.NoError(t, JammedFlagValidator("path"))
	assert.Error(t, JammedFlagValidator("--path"))
}

func TestGlobalCache(t *testing.T) {
	e := newTestEnv(t)
	base := filepath.Join(e.dir, "user-cache")
	t.Setenv("CASH_CACHE_DIR", base)

	_, err := e.run(t, "set", "--global", "shared", "yes")
	require.NoError(t, err)

	// The local file was never touched.
	_, err = os.Stat(e.file)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	out, err := e.run(t, "get", "-g", "shared")
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)

	_, err = os.Stat(filepath.Join(base, "cash.json"))
	assert.NoError(t, err)
}
