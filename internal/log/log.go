// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CASH_LOG env variable. Output goes to stderr so it never mixes with values
// printed on stdout.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("CASH_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevelFromString(strings.ToLower(level))
}

// CustomHandler formats log messages as a single line with sorted fields.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	b.WriteString(e.Message)

	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(h.Writer, "%s %.1s %s\n", timestamp.Format("2006-01-02 15:04:05"), level, b.String())
	return err
}
