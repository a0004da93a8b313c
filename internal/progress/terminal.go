// Package progress shows a spinner on stderr while cara reads history.
package progress

import (
	"os"

	"golang.org/x/term"
)

// EnvASCII forces ASCII status symbols when set to "1".
const EnvASCII = "CARA_ASCII"

// TerminalCapabilities describes the terminal attached to stderr.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsUnicode bool
}

// ProgressSymbols is the symbol set used for completion messages.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects stderr and CARA_ASCII.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsUnicode: isTTY && os.Getenv(EnvASCII) != "1",
	}
}

// SelectSymbols returns ✓/✗ with a braille spinner (set 14) on Unicode
// terminals and [OK]/[FAIL] with a |/-\ spinner (set 9) otherwise.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
	}
	return ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
}
