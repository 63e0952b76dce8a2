package cli

import "io"

// Clipboard is the side-effecting "write text" capability the host exposes.
// The shell only decides what text to hand over; the write itself is the
// host's business.
type Clipboard interface {
	WriteText(text string) error
}

// WriterClipboard writes clipboard text to an io.Writer. It is the default
// capability, targeting stdout so the copied text can be piped to whatever
// clipboard tool the environment has.
type WriterClipboard struct {
	W io.Writer
}

// WriteText writes the text to the underlying writer.
func (c WriterClipboard) WriteText(text string) error {
	_, err := io.WriteString(c.W, text)
	return err
}
