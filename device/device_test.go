package device

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utterance(text, locale string) session.Utterance {
	return session.Utterance{
		Text:   text,
		Locale: locale,
		Rate:   session.SpeechRate,
		Pitch:  session.SpeechPitch,
		Volume: session.SpeechVolume,
	}
}

func TestCommandSynthesizer_Args(t *testing.T) {
	tests := []struct {
		program string
		locale  string
		want    []string
	}{
		{"say", "en-US", []string{"-r", "160", "--", "Hello"}},
		{"espeak-ng", "en-US", []string{"-s", "140", "-p", "50", "-a", "100", "-v", "en-us", "--", "Hello"}},
		{"espeak", "zh-CN", []string{"-s", "140", "-p", "50", "-a", "100", "-v", "cmn", "--", "Hello"}},
		{"espeak-ng", "", []string{"-s", "140", "-p", "50", "-a", "100", "--", "Hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.program+"/"+tt.locale, func(t *testing.T) {
			s := NewCommandSynthesizer(tt.program)
			assert.Equal(t, tt.want, s.Args(utterance("Hello", tt.locale)))
		})
	}
}

func TestCommandSynthesizer_ArgsLeadingDash(t *testing.T) {
	for _, program := range []string{"say", "espeak-ng"} {
		t.Run(program, func(t *testing.T) {
			args := NewCommandSynthesizer(program).Args(utterance("-v hello", "en-US"))
			require.GreaterOrEqual(t, len(args), 2)
			assert.Equal(t, "--", args[len(args)-2])
			assert.Equal(t, "-v hello", args[len(args)-1])
		})
	}
}

func TestCommandSynthesizer_Speak(t *testing.T) {
	s := NewCommandSynthesizer("espeak-ng")
	var got *exec.Cmd
	s.run = func(cmd *exec.Cmd) error {
		got = cmd
		return nil
	}

	require.NoError(t, s.Speak(context.Background(), utterance("Good morning", "en-GB")))
	require.NotNil(t, got)
	assert.Equal(t, "Good morning", got.Args[len(got.Args)-1])
	assert.Contains(t, got.Args, "en-gb")
}

func TestCommandSynthesizer_SpeakEmptyText(t *testing.T) {
	s := NewCommandSynthesizer("say")
	s.run = func(*exec.Cmd) error {
		t.Fatal("command should not run")
		return nil
	}
	assert.NoError(t, s.Speak(context.Background(), utterance("  ", "en-US")))
}

func TestCommandSynthesizer_Canceled(t *testing.T) {
	s := NewCommandSynthesizer("say")
	ctx, cancel := context.WithCancel(context.Background())
	s.run = func(*exec.Cmd) error {
		cancel()
		return errors.New("signal: killed")
	}

	err := s.Speak(ctx, utterance("Hello", "en-US"))
	assert.ErrorIs(t, err, inglify.ErrCanceled)
}

func TestCommandSynthesizer_Failure(t *testing.T) {
	s := NewCommandSynthesizer("espeak")
	s.run = func(*exec.Cmd) error { return errors.New("no audio device") }

	err := s.Speak(context.Background(), utterance("Hello", "en-US"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, inglify.ErrCanceled)
	assert.Contains(t, err.Error(), "no audio device")
}

func TestSystemClipboard_WriteText(t *testing.T) {
	var written string
	c := &SystemClipboard{write: func(s string) error {
		written = s
		return nil
	}}

	require.NoError(t, c.WriteText(context.Background(), "Good morning."))
	assert.Equal(t, "Good morning.", written)
}

func TestSystemClipboard_CanceledContext(t *testing.T) {
	c := &SystemClipboard{write: func(string) error {
		t.Fatal("write should not run")
		return nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.WriteText(ctx, "x"), context.Canceled)
}

func TestDetect_NeverRecords(t *testing.T) {
	caps := Detect()
	assert.False(t, caps.CanRecord())
}
