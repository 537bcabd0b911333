// Package session implements the translation session coordinator: the state
// machine that ties text input, the translation call, result display,
// speech capture and playback, clipboard copy and history together.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/inglify/inglify"
	"go.uber.org/zap"
)

const (
	// DefaultCopiedDuration is how long the copied indicator stays on.
	DefaultCopiedDuration = 2 * time.Second

	// DefaultSettleDelay separates a canceled utterance from the next one.
	DefaultSettleDelay = 300 * time.Millisecond
)

// Coordinator is one user's translation session.
type Coordinator struct {
	translator Translator
	history    HistoryWriter
	bus        *Bus
	display    *Display
	surface    Surface
	caps       Capabilities
	logger     *zap.Logger
	listeners  []StateChangeListener

	copiedFor   time.Duration
	settleDelay time.Duration

	mu             sync.Mutex
	state          State
	text           string
	targetLanguage string
	seq            uint64
	cancel         context.CancelFunc

	// speech capture
	recording bool
	recSeq    uint64
	recCancel context.CancelFunc

	// speech playback; speechMu serializes Speak and StopSpeaking
	speechMu    sync.Mutex
	speaking    string
	speakCancel context.CancelFunc
	speakDone   chan struct{}

	// clipboard
	copiedTone  string
	copiedSeq   uint64
	copiedTimer *time.Timer
}

// Option is a functional option for configuring the Coordinator.
type Option func(*Coordinator)

// WithHistory records every accepted translation.
func WithHistory(h HistoryWriter) Option {
	return func(c *Coordinator) {
		c.history = h
	}
}

// WithBus uses an existing bus so other components can follow the session.
func WithBus(b *Bus) Option {
	return func(c *Coordinator) {
		if b != nil {
			c.bus = b
		}
	}
}

// WithSurface sets where alerts, titles and scrolling go.
func WithSurface(s Surface) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithCapabilities sets the available host features.
func WithCapabilities(caps Capabilities) Option {
	return func(c *Coordinator) {
		c.caps = caps
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTargetLanguage sets the initial target language.
func WithTargetLanguage(code string) Option {
	return func(c *Coordinator) {
		if code != "" {
			c.targetLanguage = code
		}
	}
}

// WithCopiedDuration sets how long the copied indicator stays on.
func WithCopiedDuration(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.copiedFor = d
		}
	}
}

// WithSettleDelay sets the pause between canceling one utterance and
// starting another.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= 0 {
			c.settleDelay = d
		}
	}
}

// WithStateListener registers a callback for state changes.
func WithStateListener(l StateChangeListener) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}

// New creates a coordinator that translates through translator.
func New(translator Translator, opts ...Option) *Coordinator {
	c := &Coordinator{
		translator:     translator,
		bus:            NewBus(),
		surface:        nopSurface{},
		logger:         zap.NewNop(),
		copiedFor:      DefaultCopiedDuration,
		settleDelay:    DefaultSettleDelay,
		state:          StateIdle,
		targetLanguage: inglify.DefaultLanguage,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.display = NewDisplay(c.surface)
	c.display.Attach(c.bus)

	return c
}

// Bus returns the session's event bus.
func (c *Coordinator) Bus() *Bus { return c.bus }

// Display returns the session's result area.
func (c *Coordinator) Display() *Display { return c.display }

// Capabilities returns the host features the session was built with.
func (c *Coordinator) Capabilities() Capabilities { return c.caps }

// State returns the current translation state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Text returns the current input text.
func (c *Coordinator) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText replaces the input text, truncated to the input limit.
func (c *Coordinator) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = truncate(text, inglify.MaxTextLength)
}

// TargetLanguage returns the selected target language code.
func (c *Coordinator) TargetLanguage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetLanguage
}

// SetTargetLanguage selects a target language and announces it.
func (c *Coordinator) SetTargetLanguage(code string) {
	c.mu.Lock()
	c.targetLanguage = code
	c.mu.Unlock()

	c.bus.Publish(LanguageChanged{TargetLanguage: code})
}

// Submit translates the current text into the selected language. Empty
// input is rejected without calling the translator. A failure is alerted
// once and leaves the session idle. When Reset runs during the call the
// result is discarded and ErrReset is returned.
func (c *Coordinator) Submit(ctx context.Context) (*inglify.TranslationResponse, error) {
	c.mu.Lock()
	if strings.TrimSpace(c.text) == "" {
		c.mu.Unlock()
		c.surface.Alert(MsgEmptyText)
		return nil, &inglify.ValidationError{Message: MsgEmptyText, Field: "text"}
	}
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.translator == nil {
		c.mu.Unlock()
		c.surface.Alert(MsgTranslateFailed)
		return nil, &inglify.ConfigurationError{Message: MsgTranslateFailed}
	}

	callCtx, cancel := context.WithCancel(ctx)
	c.seq++
	seq := c.seq
	c.cancel = cancel
	req := inglify.TranslationRequest{Text: c.text, TargetLanguage: c.targetLanguage}
	notify := c.transitionLocked(StateSubmitting)
	c.mu.Unlock()
	notify()

	resp, err := c.translator.Translate(callCtx, req)
	cancel()

	c.mu.Lock()
	if c.seq != seq {
		c.mu.Unlock()
		c.logger.Info("discarding translation after reset", zap.String("target_language", req.TargetLanguage))
		return nil, ErrReset
	}
	c.cancel = nil

	if err != nil {
		notifyFailed := c.transitionLocked(StateFailed)
		notifyIdle := c.transitionLocked(StateIdle)
		c.mu.Unlock()
		notifyFailed()
		notifyIdle()

		c.logger.Warn("translation failed",
			zap.String("target_language", req.TargetLanguage),
			zap.Error(err))
		c.surface.Alert(inglify.PublicMessage(err, MsgTranslateFailed))
		return nil, err
	}

	if c.history != nil {
		if _, herr := c.history.Append(*resp); herr != nil {
			c.logger.Warn("history append failed", zap.Error(herr))
		}
	}
	notify = c.transitionLocked(StateSucceeded)
	c.mu.Unlock()
	notify()

	c.bus.Publish(TranslationCompleted{Response: *resp})
	return resp, nil
}

// Reset clears the input and the displayed results, stops playback and
// abandons any translation in flight.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.text = ""
	c.clearCopiedLocked()
	notify := c.transitionLocked(StateIdle)
	c.mu.Unlock()
	notify()

	c.StopSpeaking()
	c.bus.Publish(ResultsCleared{})
}

// Restore shows a stored history item again without calling the
// translator or writing history.
func (c *Coordinator) Restore(item inglify.HistoryItem) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	notify := c.transitionLocked(StateSucceeded)
	c.mu.Unlock()
	notify()

	c.bus.Publish(TranslationCompleted{Response: item.Response()})
	return nil
}

// transitionLocked moves to next and returns the listener notification,
// to be called after the lock is released.
func (c *Coordinator) transitionLocked(next State) func() {
	prev := c.state
	if !isValidTransition(prev, next) {
		c.logger.Debug("ignoring invalid transition",
			zap.Stringer("from", prev),
			zap.Stringer("to", next))
		return func() {}
	}
	c.state = next
	listeners := c.listeners
	return func() {
		for _, l := range listeners {
			l(prev, next)
		}
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, inglify.ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		ctx.Err() != nil
}
