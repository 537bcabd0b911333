package session

import (
	"context"
	"errors"

	"github.com/inglify/inglify"
	"go.uber.org/zap"
)

// StartRecording begins speech capture in the background. The first final
// transcript replaces the input text. Capture failures are alerted with a
// message for their category. Without a recognizer it does nothing and
// returns ErrUnavailable.
func (c *Coordinator) StartRecording(ctx context.Context) error {
	rec := c.caps.Recognizer
	if rec == nil {
		return ErrUnavailable
	}

	c.mu.Lock()
	if c.recording {
		c.mu.Unlock()
		return nil
	}
	recCtx, cancel := context.WithCancel(ctx)
	c.recSeq++
	seq := c.recSeq
	c.recording = true
	c.recCancel = cancel
	c.mu.Unlock()

	go func() {
		transcript, err := rec.Recognize(recCtx, inglify.RecognitionLocale)
		canceled := err != nil && isCanceled(recCtx, err)
		cancel()

		c.mu.Lock()
		if c.recSeq != seq {
			c.mu.Unlock()
			return
		}
		c.recording = false
		c.recCancel = nil
		if err == nil {
			c.text = truncate(transcript, inglify.MaxTextLength)
		}
		c.mu.Unlock()

		if err != nil && !canceled {
			reason := captureReason(err)
			c.logger.Warn("speech capture failed", zap.String("reason", reason), zap.Error(err))
			c.surface.Alert(CaptureMessage(reason))
		}
	}()
	return nil
}

// StopRecording cancels speech capture. No text is changed.
func (c *Coordinator) StopRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.recording {
		return
	}
	c.recCancel()
	c.recSeq++
	c.recording = false
	c.recCancel = nil
}

// ToggleRecording starts capture when idle and stops it when recording.
func (c *Coordinator) ToggleRecording(ctx context.Context) error {
	if c.Recording() {
		c.StopRecording()
		return nil
	}
	return c.StartRecording(ctx)
}

// Recording reports whether speech capture is active.
func (c *Coordinator) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

func captureReason(err error) string {
	var cerr *inglify.CaptureError
	if errors.As(err, &cerr) && cerr.Reason != "" {
		return cerr.Reason
	}
	return err.Error()
}
