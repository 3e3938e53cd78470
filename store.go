// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknownEncoding is returned when an encoding label cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Store is the backing storage for a Cache: a single text document that is
// read whole, overwritten whole, and removed. Read must return an error
// matching fs.ErrNotExist when nothing has been stored yet.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// FileStore keeps the document in one file, transcoded to and from Encoding.
// Data handed to and returned from FileStore is always UTF-8.
type FileStore struct {
	Path     string
	Encoding encoding.Encoding
}

// encodingAliases maps labels accepted by Node style callers onto WHATWG
// labels known to htmlindex.
var encodingAliases = map[string]string{
	"ucs2":    "utf-16le",
	"ucs-2":   "utf-16le",
	"utf16le": "utf-16le",
	"latin1":  "iso-8859-1",
	"binary":  "iso-8859-1",
	"ascii":   "us-ascii",
}

// LookupEncoding resolves an encoding label such as "utf8" or "latin1". An
// empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	if name == "" {
		name = "utf-8"
	}
	if alias, ok := encodingAliases[name]; ok {
		name = alias
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// NewFileStore returns a FileStore for path using the named encoding.
func NewFileStore(path, encodingLabel string) (*FileStore, error) {
	enc, err := LookupEncoding(encodingLabel)
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: path, Encoding: enc}, nil
}

func (s *FileStore) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	if s.Encoding == nil {
		return b, nil
	}
	out, err := s.Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	return out, nil
}

func (s *FileStore) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Encoding != nil {
		enc, err := s.Encoding.NewEncoder().Bytes(data)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", s.Path, err)
		}
		data = enc
	}
	return os.WriteFile(s.Path, data, os.FileMode(0o600)) //nolint:mnd
}

// Remove deletes the file. A missing file is not an error.
func (s *FileStore) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
