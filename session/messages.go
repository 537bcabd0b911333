package session

import (
	"fmt"

	"github.com/inglify/inglify"
)

// User-visible messages.
const (
	MsgEmptyText          = "Mohon masukkan teks yang ingin diterjemahkan"
	MsgTranslateFailed    = "Terjadi kesalahan saat menerjemahkan"
	MsgMicDenied          = "Akses mikrofon ditolak. Silakan izinkan akses mikrofon untuk menggunakan fitur ini."
	MsgCaptureNetwork     = "Terjadi kesalahan jaringan. Pastikan koneksi internet Anda stabil dan coba lagi."
	MsgPlaybackFailed     = "Terjadi kesalahan saat memutar audio."
	MsgSpeechUnsupported  = "Text-to-speech tidak didukung di browser ini."
	MsgCopyFailed         = "Gagal menyalin teks"
	msgCaptureOtherFormat = "Terjadi kesalahan pengenalan suara: %s"
)

// CaptureMessage returns the alert shown for a speech capture failure.
func CaptureMessage(reason string) string {
	switch reason {
	case inglify.CaptureNotAllowed:
		return MsgMicDenied
	case inglify.CaptureNetwork:
		return MsgCaptureNetwork
	default:
		return fmt.Sprintf(msgCaptureOtherFormat, reason)
	}
}

// DefaultTitle is the page title while no result is shown.
func DefaultTitle(languageCode string) string {
	return fmt.Sprintf("Bahasa %snya... - Inglify", inglify.LanguageLabel(languageCode))
}

// CompletedTitle is the page title after a translation is displayed.
func CompletedTitle(languageCode, originalText string) string {
	return fmt.Sprintf("Bahasa %snya \"%s\" - Inglify", inglify.LanguageLabel(languageCode), originalText)
}
