// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

// colorEnabled decides whether output should be colorized: never when
// --no-color or NO_COLOR is set, otherwise only when stdout is a real
// terminal, grounded on the teacher's IsTerminal (pkg/zeta/misc.go).
func colorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// painter holds the color functions used to render resolved output.
// Every field is the identity function when colors are disabled, so
// callers never need to branch on colorEnabled themselves.
type painter struct {
	hash func(string) string
	kind func(string) string
	ref  func(string) string
	warn func(string) string
}

func identity(s string) string { return s }

func newPainter(enabled bool) *painter {
	if !enabled {
		return &painter{hash: identity, kind: identity, ref: identity, warn: identity}
	}
	return &painter{
		hash: ansi.ColorFunc("yellow"),
		kind: ansi.ColorFunc("cyan+b"),
		ref:  ansi.ColorFunc("green+b"),
		warn: ansi.ColorFunc("red+b"),
	}
}
