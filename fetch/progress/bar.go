package progress

import (
	"fmt"
	"io"
)

// Reporter consumes byte-count updates from an in-flight transfer.
type Reporter interface {
	// Update reports the absolute number of bytes transferred so far.
	Update(current int64)
	// IncrementBy adds delta to the last reported value and re-renders.
	IncrementBy(delta int64)
}

// Silent is a Reporter that discards all updates.
type Silent struct{}

func (Silent) Update(int64)      {}
func (Silent) IncrementBy(int64) {}

var spinnerSymbols = [...]byte{'|', '/', '-', '\\'}

// Bar renders a fixed-width progress bar on a single line, using a
// carriage return to redraw in place:
//
//	[..................                      ] 46.15385 / downloading
//
// The percentage is current/max with five-decimal precision. When the
// maximum is unknown (<= 0), the bar degrades to a spinner-only
// display showing the byte count instead of a percentage. A max of
// zero with a known total is the caller's responsibility to avoid.
type Bar struct {
	out          io.Writer
	current      int64
	max          int64
	mesg         string
	width        int
	fillChar     byte
	spinner      bool
	spinnerIndex int
}

// BarOption configures a [Bar].
type BarOption func(*Bar)

// WithWidth sets the number of characters used for the bar itself.
func WithWidth(chars int) BarOption {
	return func(b *Bar) {
		if chars > 0 {
			b.width = chars
		}
	}
}

// WithFillChar sets the character marking the completed portion.
func WithFillChar(c byte) BarOption {
	return func(b *Bar) { b.fillChar = c }
}

// WithSpinner enables a rotating glyph that advances on every update,
// signalling liveness when byte-level progress is coarse.
func WithSpinner() BarOption {
	return func(b *Bar) { b.spinner = true }
}

// WithMessage sets the text trailing the bar.
func WithMessage(mesg string) BarOption {
	return func(b *Bar) { b.mesg = mesg }
}

// NewBar returns a Bar covering [0, max] bytes starting at initial,
// writing to out. Pass max <= 0 for the spinner-only display.
func NewBar(out io.Writer, initial, max int64, opts ...BarOption) *Bar {
	b := &Bar{
		out:      out,
		current:  initial,
		max:      max,
		width:    40,
		fillChar: '.',
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Update renders the bar with the given absolute byte count and
// advances the spinner. Output is written in full on every call so it
// stays visible under line-buffered redirection.
func (b *Bar) Update(current int64) {
	b.current = current

	glyph := byte(' ')
	if b.spinner {
		glyph = spinnerSymbols[b.spinnerIndex]
		b.spinnerIndex = (b.spinnerIndex + 1) % len(spinnerSymbols)
	}

	if b.max <= 0 {
		fmt.Fprintf(b.out, "\r%c %s %s   ", glyph, FormatBytes(b.current), b.mesg)
		b.flush()
		return
	}

	ratio := float64(b.current) / float64(b.max)
	filled := int(ratio * float64(b.width))
	if filled > b.width {
		filled = b.width
	}

	fmt.Fprintf(b.out, "\r[%s%s] %.5f %c %s   ",
		repeat(b.fillChar, filled),
		repeat(' ', b.width-filled),
		ratio*100,
		glyph,
		b.mesg,
	)
	b.flush()
}

// IncrementBy adds delta to the last known value and renders.
func (b *Bar) IncrementBy(delta int64) {
	b.Update(b.current + delta)
}

// Finish terminates the in-place line so subsequent output starts
// fresh.
func (b *Bar) Finish() {
	fmt.Fprintln(b.out)
	b.flush()
}

func (b *Bar) flush() {
	if f, ok := b.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

func repeat(c byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = c
	}

	return buf
}
