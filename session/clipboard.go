package session

import (
	"context"
	"time"

	"github.com/inglify/inglify"
	"go.uber.org/zap"
)

// Copy writes a tone's displayed translation to the clipboard and marks
// the tone as copied for a short while. Failures are alerted once and are
// not retried.
func (c *Coordinator) Copy(ctx context.Context, tone string) error {
	cb := c.caps.Clipboard
	if cb == nil {
		c.surface.Alert(MsgCopyFailed)
		return &inglify.ClipboardError{Cause: ErrUnavailable}
	}

	if err := cb.WriteText(ctx, c.display.Translation(tone)); err != nil {
		c.logger.Warn("clipboard write failed", zap.String("tone", tone), zap.Error(err))
		c.surface.Alert(MsgCopyFailed)
		return &inglify.ClipboardError{Cause: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.copiedSeq++
	seq := c.copiedSeq
	c.copiedTone = tone
	if c.copiedTimer != nil {
		c.copiedTimer.Stop()
	}
	c.copiedTimer = time.AfterFunc(c.copiedFor, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.copiedSeq == seq {
			c.copiedTone = ""
			c.copiedTimer = nil
		}
	})
	return nil
}

// CopiedTone returns the tone whose copied indicator is on, or "".
func (c *Coordinator) CopiedTone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copiedTone
}

// clearCopiedLocked must be called with mu held.
func (c *Coordinator) clearCopiedLocked() {
	c.copiedSeq++
	c.copiedTone = ""
	if c.copiedTimer != nil {
		c.copiedTimer.Stop()
		c.copiedTimer = nil
	}
}
