package session

import (
	"sync"

	"github.com/inglify/inglify"
)

// Display is the result area: it follows the bus and keeps the visible
// result set, keyed by tone, plus the page title.
type Display struct {
	surface Surface

	mu           sync.RWMutex
	visible      bool
	originalText string
	translations map[string]string
	language     string
	title        string
}

// NewDisplay creates a hidden display for the default language.
func NewDisplay(surface Surface) *Display {
	if surface == nil {
		surface = nopSurface{}
	}
	return &Display{
		surface:      surface,
		translations: map[string]string{},
		language:     inglify.DefaultLanguage,
	}
}

// Attach subscribes the display to bus.
func (d *Display) Attach(bus *Bus) (detach func()) {
	return bus.Subscribe(d.handle)
}

func (d *Display) handle(ev Event) {
	switch e := ev.(type) {
	case TranslationCompleted:
		d.show(e.Response)
	case ResultsCleared:
		d.clear()
	case LanguageChanged:
		d.languageChanged(e.TargetLanguage)
	}
}

func (d *Display) show(resp inglify.TranslationResponse) {
	title := CompletedTitle(resp.TargetLanguage, resp.OriginalText)

	d.mu.Lock()
	d.visible = true
	d.originalText = resp.OriginalText
	d.translations = resp.ByTone()
	d.language = resp.TargetLanguage
	d.title = title
	d.mu.Unlock()

	d.surface.SetTitle(title)
	d.surface.ScrollToResults()
}

func (d *Display) clear() {
	d.mu.Lock()
	d.visible = false
	d.originalText = ""
	d.translations = map[string]string{}
	d.title = DefaultTitle(d.language)
	title := d.title
	d.mu.Unlock()

	d.surface.SetTitle(title)
}

// languageChanged only retitles for catalog languages.
func (d *Display) languageChanged(code string) {
	if !inglify.IsSupported(code) {
		return
	}
	title := DefaultTitle(code)

	d.mu.Lock()
	d.title = title
	d.mu.Unlock()

	d.surface.SetTitle(title)
}

// Visible reports whether results are shown.
func (d *Display) Visible() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visible
}

// OriginalText returns the source text of the shown results.
func (d *Display) OriginalText() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.originalText
}

// Language returns the target language of the last shown results.
func (d *Display) Language() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.language
}

// Title returns the current page title, empty before the first change.
func (d *Display) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// Translation returns the shown translation for tone. Tones the response
// did not include read as empty.
func (d *Display) Translation(tone string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.translations[tone]
}

// Results returns one entry per catalog tone, in catalog order.
func (d *Display) Results() []inglify.TranslationResult {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]inglify.TranslationResult, len(inglify.TranslationTones))
	for i, tone := range inglify.TranslationTones {
		out[i] = inglify.TranslationResult{Tone: tone.Name, Translation: d.translations[tone.Name]}
	}
	return out
}
