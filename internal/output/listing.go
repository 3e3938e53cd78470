// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/config"
)

// previewWidth is the most characters of a value shown in a listing.
const previewWidth = 40

// Row is one listed cache entry.
type Row struct {
	Key     string    `json:"key" yaml:"key"`
	Expires time.Time `json:"expires,omitzero" yaml:"expires,omitempty"`
	Expired bool      `json:"expired" yaml:"expired"`
	Size    int       `json:"size" yaml:"size"`
	Value   string    `json:"value" yaml:"value"`
}

// Rows flattens a table into rows sorted by key. Expired entries are only
// kept when withExpired is set.
func Rows(t cash.Table, now time.Time, withExpired bool) []Row {
	rows := make([]Row, 0, len(t))
	for k, e := range t {
		expired := e.Expired(now)
		if expired && !withExpired {
			continue
		}
		rows = append(rows, Row{
			Key:     k,
			Expires: e.Expires,
			Expired: expired,
			Size:    len(e.Value),
			Value:   string(e.Value),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// TableOptions controls text rendering.
type TableOptions struct {
	Color  bool
	Titles bool
	Now    time.Time
}

// Spit writes rows to w in the requested format: text, json or yaml.
func Spit(w io.Writer, rows []Row, format string, opts TableOptions) error {
	switch format {
	case "json":
		b, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		TableWriter(w, rows, opts)
		return nil
	}
}

// TableWriter renders rows as a borderless table.
func TableWriter(w io.Writer, rows []Row, opts TableOptions) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Key,
			expiresString(r, now),
			humanize.Bytes(uint64(r.Size)),
			preview(r.Value),
		})
	}

	pad, _ := config.GetInt("padding", 2)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(data...)

	if opts.Titles {
		t = t.Headers("KEY", "EXPIRES", "SIZE", "VALUE").BorderHeader(false)
	}

	fmt.Fprintln(w, t.String())
}

// IsTerminal reports whether f is attached to a terminal. Listings are only
// colored on a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func expiresString(r Row, now time.Time) string {
	switch {
	case r.Expires.IsZero():
		return "never"
	case r.Expired:
		return "expired " + humanize.RelTime(r.Expires, now, "ago", "from now")
	default:
		return humanize.RelTime(r.Expires, now, "ago", "from now")
	}
}

func preview(v string) string {
	runes := []rune(v)
	if len(runes) <= previewWidth {
		return v
	}
	return string(runes[:previewWidth-3]) + "..."
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
