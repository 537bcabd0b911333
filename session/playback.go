package session

import (
	"context"
	"time"

	"github.com/inglify/inglify"
	"go.uber.org/zap"
)

// Speak toggles playback of a tone's displayed translation. Speaking the
// tone already playing stops it. Speaking another tone stops the current
// utterance, waits for it to finish and for the settle delay, then starts
// the new one. Playback runs in the background.
func (c *Coordinator) Speak(tone string) error {
	synth := c.caps.Synthesizer
	if synth == nil {
		c.surface.Alert(MsgSpeechUnsupported)
		return ErrUnavailable
	}

	c.speechMu.Lock()
	defer c.speechMu.Unlock()

	c.mu.Lock()
	current := c.speaking
	c.mu.Unlock()

	if current == tone {
		c.stopSpeakingLocked()
		return nil
	}
	if current != "" {
		c.stopSpeakingLocked()
		if c.settleDelay > 0 {
			time.Sleep(c.settleDelay)
		}
	}

	c.startSpeech(synth, tone)
	return nil
}

// SpeakingTone returns the tone being spoken, or "" when silent.
func (c *Coordinator) SpeakingTone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speaking
}

// StopSpeaking cancels playback and waits until it has ended.
func (c *Coordinator) StopSpeaking() {
	c.speechMu.Lock()
	defer c.speechMu.Unlock()
	c.stopSpeakingLocked()
}

// stopSpeakingLocked must be called with speechMu held.
func (c *Coordinator) stopSpeakingLocked() {
	c.mu.Lock()
	cancel, done := c.speakCancel, c.speakDone
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// startSpeech must be called with speechMu held.
func (c *Coordinator) startSpeech(synth Synthesizer, tone string) {
	u := Utterance{
		Text:   c.display.Translation(tone),
		Locale: inglify.VoiceLocale(c.display.Language()),
		Rate:   SpeechRate,
		Pitch:  SpeechPitch,
		Volume: SpeechVolume,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.speaking = tone
	c.speakCancel = cancel
	c.speakDone = done
	c.mu.Unlock()

	go func() {
		err := synth.Speak(ctx, u)
		canceled := err != nil && isCanceled(ctx, err)
		cancel()

		c.mu.Lock()
		if c.speakDone == done {
			c.speaking = ""
			c.speakCancel = nil
			c.speakDone = nil
		}
		c.mu.Unlock()
		close(done)

		if err != nil && !canceled {
			c.logger.Warn("speech playback failed", zap.String("tone", tone), zap.Error(err))
			c.surface.Alert(MsgPlaybackFailed)
		}
	}()
}
