//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// badNameReplacement is used when nothing of output name segment survives
// cleaning.
const badNameReplacement = "_unnamed_"

// reservedNameRunes may not appear in NTFS file names.
const reservedNameRunes = `<>":/\|?*`

// CleanFileName drops characters Windows does not accept in file names
// from single output path segment built out of document name.
func CleanFileName(segment string) string {
	drop := reservedNameRunes + string(os.PathSeparator) + string(os.PathListSeparator)
	cleaned := strings.Map(func(r rune) rune {
		if r == 0 || strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, segment)
	if cleaned == "" {
		return badNameReplacement
	}
	return cleaned
}

// EnableColorOutput reports whether console log stream could be colored.
// On Windows 10 and later it also switches console into VT100 mode so zap
// color escapes are interpreted.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) || windowsMajorVersion() < 10 {
		return false
	}

	const vtProcessing uint32 = 0x4 // ENABLE_VIRTUAL_TERMINAL_PROCESSING

	console := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(console, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(console, mode|vtProcessing) == nil
}

func windowsMajorVersion() uint64 {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return 0
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	if err != nil {
		return 0
	}
	return v
}
