//go:generate mockgen -source=capability.go -destination=mock/mock_session.go

package session

import (
	"context"

	"github.com/inglify/inglify"
)

// Speech parameters applied to every utterance.
const (
	SpeechRate   = 0.8
	SpeechPitch  = 1.0
	SpeechVolume = 1.0
)

// Utterance is one request to speak text.
type Utterance struct {
	Text   string
	Locale string
	Rate   float64
	Pitch  float64
	Volume float64
}

// Recognizer captures speech and returns the first final transcript.
// It blocks until a transcript is available, ctx is done, or capture fails.
// Failures should be *inglify.CaptureError so they can be categorized.
type Recognizer interface {
	Recognize(ctx context.Context, locale string) (string, error)
}

// Synthesizer speaks an utterance, blocking until it ends. When ctx is
// canceled it stops speaking and returns an error matching
// inglify.ErrCanceled or ctx.Err().
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Surface is the user-facing side of a session.
type Surface interface {
	Alert(message string)
	SetTitle(title string)
	ScrollToResults()
}

// Capabilities lists the optional host features. A nil field means the
// feature is unavailable and the matching actions degrade quietly.
type Capabilities struct {
	Recognizer  Recognizer
	Synthesizer Synthesizer
	Clipboard   Clipboard
}

// CanRecord reports whether speech capture is available.
func (c Capabilities) CanRecord() bool { return c.Recognizer != nil }

// CanSpeak reports whether speech playback is available.
func (c Capabilities) CanSpeak() bool { return c.Synthesizer != nil }

// CanCopy reports whether clipboard writes are available.
func (c Capabilities) CanCopy() bool { return c.Clipboard != nil }

// Translator produces translations for the coordinator.
// inglify.Gateway and client.Client both satisfy it.
type Translator interface {
	Translate(ctx context.Context, req inglify.TranslationRequest) (*inglify.TranslationResponse, error)
}

// HistoryWriter records accepted translations.
type HistoryWriter interface {
	Append(resp inglify.TranslationResponse) (inglify.HistoryItem, error)
}

type nopSurface struct{}

func (nopSurface) Alert(string)     {}
func (nopSurface) SetTitle(string)  {}
func (nopSurface) ScrollToResults() {}
