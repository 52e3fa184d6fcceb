package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ScanDisplay shows a spinner while a directory tree is scanned.
// Nothing is written when the target stream is not a terminal.
type ScanDisplay struct {
	capabilities TerminalCapabilities
	out          io.Writer
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
}

// NewScanDisplay creates a display writing to out, normally stderr.
func NewScanDisplay(caps TerminalCapabilities, out io.Writer) *ScanDisplay {
	return &ScanDisplay{
		capabilities: caps,
		out:          out,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins the spinner with msg as its suffix.
func (p *ScanDisplay) Start(msg string) {
	if !p.capabilities.IsTTY || p.spinner != nil {
		return
	}
	writer := spinner.WithWriter(p.out)
	if f, ok := p.out.(*os.File); ok {
		writer = spinner.WithWriterFile(f)
	}
	p.spinner = spinner.New(
		spinner.CharSets[p.symbols.SpinnerSet],
		100*time.Millisecond,
		writer,
	)
	p.spinner.Suffix = " " + fitWidth(msg, p.capabilities.Width-2)
	p.spinner.Start()
}

// Stop halts the spinner and clears its line.
func (p *ScanDisplay) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// fitWidth clips msg to at most width runes. A non-positive width means unknown.
func fitWidth(msg string, width int) string {
	runes := []rune(msg)
	if width <= 0 || len(runes) <= width {
		return msg
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
