// Package device adapts host features (speech playback and the system
// clipboard) to the session capability interfaces.
package device

import (
	"github.com/inglify/inglify/session"
)

// Detect probes the host and returns the capabilities it offers. Speech
// capture has no host backend here and is always reported unavailable.
func Detect() session.Capabilities {
	var caps session.Capabilities
	if synth := DetectSynthesizer(); synth != nil {
		caps.Synthesizer = synth
	}
	if cb := NewSystemClipboard(); cb.Available() {
		caps.Clipboard = cb
	}
	return caps
}
