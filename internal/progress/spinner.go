package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner. When the output is not a terminal it
// prints nothing while running and only the final status line.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner returns a spinner writing to w with the given capabilities.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	sp := &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
	if caps.IsTTY {
		sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	}
	return sp
}

// Start begins spinning with message as suffix.
func (sp *Spinner) Start(message string) {
	if sp.s == nil {
		return
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Success stops the spinner and prints a checkmark line.
func (sp *Spinner) Success(message string) {
	sp.finish(sp.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (sp *Spinner) Fail(message string) {
	sp.finish(sp.symbols.Failure, message)
}

func (sp *Spinner) finish(symbol, message string) {
	if sp.s != nil {
		sp.s.Stop()
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, message)
}
