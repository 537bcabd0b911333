package device

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/inglify/inglify/session"
)

var _ session.Clipboard = (*SystemClipboard)(nil)

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct {
	write func(string) error
}

// NewSystemClipboard returns a clipboard backed by the host.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{write: clipboard.WriteAll}
}

// Available reports whether the host has a usable clipboard tool.
func (c *SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents with text.
func (c *SystemClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.write(text)
}
