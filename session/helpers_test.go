package session_test

import (
	"context"
	"sync"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/session"
)

// recordingSurface keeps every alert and title it receives.
type recordingSurface struct {
	mu      sync.Mutex
	alerts  []string
	titles  []string
	scrolls int
}

func (s *recordingSurface) Alert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, msg)
}

func (s *recordingSurface) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
}

func (s *recordingSurface) ScrollToResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolls++
}

func (s *recordingSurface) Alerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.alerts...)
}

func (s *recordingSurface) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

// fakeSynth speaks until canceled or until Finish is called.
type fakeSynth struct {
	mu         sync.Mutex
	utterances []session.Utterance
	canceled   int
	finish     chan error
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{finish: make(chan error, 8)}
}

func (f *fakeSynth) Speak(ctx context.Context, u session.Utterance) error {
	f.mu.Lock()
	f.utterances = append(f.utterances, u)
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.canceled++
		f.mu.Unlock()
		return inglify.ErrCanceled
	case err := <-f.finish:
		return err
	}
}

// Finish ends the current utterance with err.
func (f *fakeSynth) Finish(err error) {
	f.finish <- err
}

func (f *fakeSynth) Utterances() []session.Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]session.Utterance(nil), f.utterances...)
}

func (f *fakeSynth) Canceled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canceled
}

func sixTones(text string) []inglify.TranslationResult {
	return []inglify.TranslationResult{
		{Tone: inglify.ToneFormal, Translation: "Good morning."},
		{Tone: inglify.ToneCasual, Translation: "Morning!"},
		{Tone: inglify.ToneFriendly, Translation: "Good morning, friend!"},
		{Tone: inglify.ToneProfessional, Translation: "Good morning to you."},
		{Tone: inglify.ToneSimple, Translation: "Morning."},
		{Tone: inglify.TonePersuasive, Translation: "Make it a great morning!"},
	}
}

func responseFor(text, lang string) *inglify.TranslationResponse {
	return &inglify.TranslationResponse{
		Results:        sixTones(text),
		OriginalText:   text,
		TargetLanguage: lang,
		Timestamp:      1700000000000,
	}
}
