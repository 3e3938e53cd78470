// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders cache contents for the command line: listings as
// text tables, JSON or YAML, and single values optionally narrowed by a
// gjson path.
package output
