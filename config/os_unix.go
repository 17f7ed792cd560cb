//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// badNameReplacement is used when nothing of output name segment survives
// cleaning.
const badNameReplacement = "_unnamed_"

// CleanFileName drops path and list separators from single output path
// segment built out of document name so it cannot escape destination
// directory. Leading dots are dropped to avoid hidden files.
func CleanFileName(segment string) string {
	drop := string(os.PathSeparator) + string(os.PathListSeparator)
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, segment)
	if cleaned = strings.TrimLeft(cleaned, "."); cleaned == "" {
		return badNameReplacement
	}
	return cleaned
}

// EnableColorOutput reports whether console log stream is a terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
