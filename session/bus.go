package session

import (
	"sync"

	"github.com/inglify/inglify"
)

// Event names.
const (
	EventTranslationCompleted = "translation-complete"
	EventResultsCleared       = "clear-results"
	EventLanguageChanged      = "language-changed"
)

// Event is a message published on the Bus.
type Event interface {
	Name() string
}

// TranslationCompleted carries a response to display, freshly produced or
// restored from history.
type TranslationCompleted struct {
	Response inglify.TranslationResponse
}

func (TranslationCompleted) Name() string { return EventTranslationCompleted }

// ResultsCleared asks every listener to drop the displayed results.
type ResultsCleared struct{}

func (ResultsCleared) Name() string { return EventResultsCleared }

// LanguageChanged reports a new target language selection.
type LanguageChanged struct {
	TargetLanguage string
}

func (LanguageChanged) Name() string { return EventLanguageChanged }

// Handler receives published events.
type Handler func(Event)

// Bus is an in-process publish/subscribe channel. Delivery is synchronous,
// in subscription order, with no replay of earlier events.
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
	order    []int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers ev to every current subscriber before returning.
// Handlers may publish or subscribe themselves.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
