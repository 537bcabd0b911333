package session_test

import (
	"testing"

	"github.com/inglify/inglify/session"
	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := session.NewBus()
	var got []string

	bus.Subscribe(func(ev session.Event) { got = append(got, "a:"+ev.Name()) })
	bus.Subscribe(func(ev session.Event) { got = append(got, "b:"+ev.Name()) })

	bus.Publish(session.ResultsCleared{})
	bus.Publish(session.LanguageChanged{TargetLanguage: "fr"})

	assert.Equal(t, []string{
		"a:clear-results", "b:clear-results",
		"a:language-changed", "b:language-changed",
	}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := session.NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(func(session.Event) { calls++ })
	assert.Equal(t, 1, bus.Len())

	bus.Publish(session.ResultsCleared{})
	unsubscribe()
	unsubscribe()
	bus.Publish(session.ResultsCleared{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_NoReplay(t *testing.T) {
	bus := session.NewBus()
	bus.Publish(session.ResultsCleared{})

	calls := 0
	bus.Subscribe(func(session.Event) { calls++ })
	assert.Equal(t, 0, calls)
}

func TestBus_HandlerMayPublish(t *testing.T) {
	bus := session.NewBus()
	var got []string

	bus.Subscribe(func(ev session.Event) {
		got = append(got, ev.Name())
		if _, ok := ev.(session.LanguageChanged); ok {
			bus.Publish(session.ResultsCleared{})
		}
	})

	bus.Publish(session.LanguageChanged{TargetLanguage: "de"})
	assert.Equal(t, []string{"language-changed", "clear-results"}, got)
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "translation-complete", session.TranslationCompleted{}.Name())
	assert.Equal(t, "clear-results", session.ResultsCleared{}.Name())
	assert.Equal(t, "language-changed", session.LanguageChanged{}.Name())
}
