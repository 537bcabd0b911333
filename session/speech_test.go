package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/inglify/inglify"
	"github.com/inglify/inglify/session"
	mock_session "github.com/inglify/inglify/session/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shownSession returns a coordinator already displaying a response.
func shownSession(t *testing.T, lang string, opts ...session.Option) *session.Coordinator {
	t.Helper()
	c := session.New(nil, opts...)
	require.NoError(t, c.Restore(inglify.NewHistoryItem("h1", *responseFor("Selamat pagi", lang))))
	return c
}

func TestPlayback_StartAndToggleOff(t *testing.T) {
	synth := newFakeSynth()
	surface := &recordingSurface{}
	c := shownSession(t, "en",
		session.WithCapabilities(session.Capabilities{Synthesizer: synth}),
		session.WithSurface(surface))

	require.NoError(t, c.Speak(inglify.ToneFormal))
	assert.Equal(t, inglify.ToneFormal, c.SpeakingTone())

	require.Eventually(t, func() bool { return len(synth.Utterances()) == 1 }, time.Second, 5*time.Millisecond)
	u := synth.Utterances()[0]
	assert.Equal(t, "Good morning.", u.Text)
	assert.Equal(t, "en-US", u.Locale)
	assert.Equal(t, session.SpeechRate, u.Rate)
	assert.Equal(t, session.SpeechPitch, u.Pitch)
	assert.Equal(t, session.SpeechVolume, u.Volume)

	// Same tone again stops it.
	require.NoError(t, c.Speak(inglify.ToneFormal))
	assert.Equal(t, "", c.SpeakingTone())
	assert.Equal(t, 1, synth.Canceled())
	assert.Len(t, synth.Utterances(), 1, "toggle-off must not start a new utterance")
	assert.Empty(t, surface.Alerts(), "cancellation is not reported")
}

func TestPlayback_SwitchTone(t *testing.T) {
	synth := newFakeSynth()
	surface := &recordingSurface{}
	c := shownSession(t, "ja",
		session.WithCapabilities(session.Capabilities{Synthesizer: synth}),
		session.WithSurface(surface),
		session.WithSettleDelay(20*time.Millisecond))

	require.NoError(t, c.Speak(inglify.ToneFormal))
	require.Eventually(t, func() bool { return len(synth.Utterances()) == 1 }, time.Second, 5*time.Millisecond)

	start := time.Now()
	require.NoError(t, c.Speak(inglify.ToneCasual))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "switch waits for the settle delay")

	assert.Equal(t, inglify.ToneCasual, c.SpeakingTone())
	assert.Equal(t, 1, synth.Canceled())

	require.Eventually(t, func() bool { return len(synth.Utterances()) == 2 }, time.Second, 5*time.Millisecond)
	u := synth.Utterances()[1]
	assert.Equal(t, "Morning!", u.Text)
	assert.Equal(t, "ja-JP", u.Locale)
	assert.Empty(t, surface.Alerts())
}

func TestPlayback_NaturalEnd(t *testing.T) {
	synth := newFakeSynth()
	c := shownSession(t, "en", session.WithCapabilities(session.Capabilities{Synthesizer: synth}))

	require.NoError(t, c.Speak(inglify.ToneSimple))
	require.Eventually(t, func() bool { return len(synth.Utterances()) == 1 }, time.Second, 5*time.Millisecond)

	synth.Finish(nil)

	require.Eventually(t, func() bool { return c.SpeakingTone() == "" }, time.Second, 5*time.Millisecond)

	// Speaking again after a natural end starts a fresh utterance.
	require.NoError(t, c.Speak(inglify.ToneSimple))
	require.Eventually(t, func() bool { return len(synth.Utterances()) == 2 }, time.Second, 5*time.Millisecond)
	c.StopSpeaking()
	assert.Equal(t, "", c.SpeakingTone())
}

func TestPlayback_Error(t *testing.T) {
	synth := newFakeSynth()
	surface := &recordingSurface{}
	c := shownSession(t, "en",
		session.WithCapabilities(session.Capabilities{Synthesizer: synth}),
		session.WithSurface(surface))

	require.NoError(t, c.Speak(inglify.ToneFormal))
	require.Eventually(t, func() bool { return len(synth.Utterances()) == 1 }, time.Second, 5*time.Millisecond)

	synth.Finish(errors.New("audio device lost"))

	require.Eventually(t, func() bool { return len(surface.Alerts()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, session.MsgPlaybackFailed, surface.Alerts()[0])
	assert.Equal(t, "", c.SpeakingTone())
}

func TestPlayback_Unavailable(t *testing.T) {
	surface := &recordingSurface{}
	c := shownSession(t, "en", session.WithSurface(surface))

	err := c.Speak(inglify.ToneFormal)
	assert.ErrorIs(t, err, session.ErrUnavailable)
	assert.Equal(t, []string{session.MsgSpeechUnsupported}, surface.Alerts())
}

func TestPlayback_ResetStopsSpeech(t *testing.T) {
	synth := newFakeSynth()
	c := shownSession(t, "en", session.WithCapabilities(session.Capabilities{Synthesizer: synth}))

	require.NoError(t, c.Speak(inglify.TonePersuasive))
	require.Eventually(t, func() bool { return len(synth.Utterances()) == 1 }, time.Second, 5*time.Millisecond)

	c.Reset()

	assert.Equal(t, "", c.SpeakingTone())
	assert.Equal(t, 1, synth.Canceled())
}

func TestCapture_TranscriptReplacesText(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mock_session.NewMockRecognizer(ctrl)
	rec.EXPECT().Recognize(gomock.Any(), "id-ID").Return("Selamat pagi", nil)

	c := session.New(nil, session.WithCapabilities(session.Capabilities{Recognizer: rec}))
	c.SetText("lama")

	require.NoError(t, c.StartRecording(context.Background()))

	require.Eventually(t, func() bool { return !c.Recording() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Selamat pagi", c.Text())
}

func TestCapture_Errors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		alert string
	}{
		{"not allowed", &inglify.CaptureError{Reason: inglify.CaptureNotAllowed}, session.MsgMicDenied},
		{"network", &inglify.CaptureError{Reason: inglify.CaptureNetwork}, session.MsgCaptureNetwork},
		{"other reason", &inglify.CaptureError{Reason: "no-speech"}, "Terjadi kesalahan pengenalan suara: no-speech"},
		{"untyped", errors.New("audio-capture"), "Terjadi kesalahan pengenalan suara: audio-capture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rec := mock_session.NewMockRecognizer(ctrl)
			rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return("", tt.err)
			surface := &recordingSurface{}

			c := session.New(nil,
				session.WithCapabilities(session.Capabilities{Recognizer: rec}),
				session.WithSurface(surface))
			c.SetText("tetap")

			require.NoError(t, c.StartRecording(context.Background()))

			require.Eventually(t, func() bool { return len(surface.Alerts()) == 1 }, time.Second, 5*time.Millisecond)
			assert.Equal(t, tt.alert, surface.Alerts()[0])
			assert.False(t, c.Recording())
			assert.Equal(t, "tetap", c.Text())
		})
	}
}

func TestCapture_StopIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mock_session.NewMockRecognizer(ctrl)
	returned := make(chan struct{})
	rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, locale string) (string, error) {
		defer close(returned)
		<-ctx.Done()
		return "", ctx.Err()
	})
	surface := &recordingSurface{}

	c := session.New(nil,
		session.WithCapabilities(session.Capabilities{Recognizer: rec}),
		session.WithSurface(surface))
	c.SetText("tetap")

	require.NoError(t, c.ToggleRecording(context.Background()))
	assert.True(t, c.Recording())

	require.NoError(t, c.ToggleRecording(context.Background()))
	assert.False(t, c.Recording())

	<-returned
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, surface.Alerts())
	assert.Equal(t, "tetap", c.Text())
}

func TestCapture_Unavailable(t *testing.T) {
	c := session.New(nil)
	assert.ErrorIs(t, c.StartRecording(context.Background()), session.ErrUnavailable)
	assert.False(t, c.Recording())
}

func TestCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	cb := mock_session.NewMockClipboard(ctrl)
	cb.EXPECT().WriteText(gomock.Any(), "Good morning, friend!").Return(nil)

	c := shownSession(t, "en",
		session.WithCapabilities(session.Capabilities{Clipboard: cb}),
		session.WithCopiedDuration(40*time.Millisecond))

	require.NoError(t, c.Copy(context.Background(), inglify.ToneFriendly))
	assert.Equal(t, inglify.ToneFriendly, c.CopiedTone())

	require.Eventually(t, func() bool { return c.CopiedTone() == "" }, time.Second, 5*time.Millisecond)
}

func TestCopy_SecondCopyRestartsIndicator(t *testing.T) {
	ctrl := gomock.NewController(t)
	cb := mock_session.NewMockClipboard(ctrl)
	cb.EXPECT().WriteText(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	c := shownSession(t, "en",
		session.WithCapabilities(session.Capabilities{Clipboard: cb}),
		session.WithCopiedDuration(time.Hour))

	require.NoError(t, c.Copy(context.Background(), inglify.ToneFormal))
	require.NoError(t, c.Copy(context.Background(), inglify.ToneCasual))
	assert.Equal(t, inglify.ToneCasual, c.CopiedTone())

	c.Reset()
	assert.Equal(t, "", c.CopiedTone())
}

func TestCopy_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	cb := mock_session.NewMockClipboard(ctrl)
	cb.EXPECT().WriteText(gomock.Any(), gomock.Any()).Return(errors.New("denied"))
	surface := &recordingSurface{}

	c := shownSession(t, "en",
		session.WithCapabilities(session.Capabilities{Clipboard: cb}),
		session.WithSurface(surface))

	err := c.Copy(context.Background(), inglify.ToneFormal)

	var cerr *inglify.ClipboardError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{session.MsgCopyFailed}, surface.Alerts())
	assert.Equal(t, "", c.CopiedTone())
}

func TestCopy_Unavailable(t *testing.T) {
	surface := &recordingSurface{}
	c := shownSession(t, "en", session.WithSurface(surface))

	err := c.Copy(context.Background(), inglify.ToneFormal)
	assert.ErrorIs(t, err, session.ErrUnavailable)
	assert.Equal(t, []string{session.MsgCopyFailed}, surface.Alerts())
}
