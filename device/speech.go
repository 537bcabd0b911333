package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/session"
)

var _ session.Synthesizer = (*CommandSynthesizer)(nil)

// Base speaking rates in words per minute for a rate of 1.0.
const (
	sayBaseRate    = 200
	espeakBaseRate = 175
)

// CommandSynthesizer speaks through a text-to-speech command line tool:
// say on macOS, espeak-ng or espeak elsewhere.
type CommandSynthesizer struct {
	program string
	run     func(cmd *exec.Cmd) error
}

// NewCommandSynthesizer creates a synthesizer for program, which must be
// "say", "espeak-ng" or "espeak".
func NewCommandSynthesizer(program string) *CommandSynthesizer {
	return &CommandSynthesizer{
		program: program,
		run:     func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// DetectSynthesizer returns a synthesizer for the first tool found on
// PATH, or nil.
func DetectSynthesizer() *CommandSynthesizer {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return NewCommandSynthesizer(name)
		}
	}
	return nil
}

// Program returns the command used for speech.
func (s *CommandSynthesizer) Program() string {
	return s.program
}

// Speak runs the command and blocks until it exits. Canceling ctx kills
// the command and returns inglify.ErrCanceled.
func (s *CommandSynthesizer) Speak(ctx context.Context, u session.Utterance) error {
	if strings.TrimSpace(u.Text) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, s.program, s.Args(u)...)
	err := s.run(cmd)
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", s.program, inglify.ErrCanceled)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with code %d: %w", s.program, exitErr.ExitCode(), err)
		}
		return fmt.Errorf("%s: %w", s.program, err)
	}
	return nil
}

// Args returns the command line arguments for u. The text follows "--" so
// a translation starting with "-" is never read as an option.
func (s *CommandSynthesizer) Args(u session.Utterance) []string {
	switch s.program {
	case "say":
		return []string{"-r", strconv.Itoa(scale(sayBaseRate, u.Rate)), "--", u.Text}
	default:
		args := []string{
			"-s", strconv.Itoa(scale(espeakBaseRate, u.Rate)),
			"-p", strconv.Itoa(clamp(scale(50, u.Pitch), 0, 99)),
			"-a", strconv.Itoa(clamp(scale(100, u.Volume), 0, 200)),
		}
		if voice := espeakVoice(u.Locale); voice != "" {
			args = append(args, "-v", voice)
		}
		return append(args, "--", u.Text)
	}
}

// espeakVoice maps "en-US" to "en-us" and "zh-CN" to "cmn".
func espeakVoice(locale string) string {
	voice := strings.ToLower(locale)
	if strings.HasPrefix(voice, "zh") {
		return "cmn"
	}
	return voice
}

func scale(base int, factor float64) int {
	if factor <= 0 {
		factor = 1
	}
	return int(float64(base)*factor + 0.5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
