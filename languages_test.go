package inglify

import "testing"

func TestSupportedLanguages(t *testing.T) {
	if len(SupportedLanguages) != 73 {
		t.Errorf("expected 73 languages, got %d", len(SupportedLanguages))
	}

	seen := make(map[string]bool)
	for _, l := range SupportedLanguages {
		if l.Code == "" || l.Name == "" || l.Label == "" {
			t.Errorf("incomplete entry: %+v", l)
		}
		if seen[l.Code] {
			t.Errorf("duplicate code %q", l.Code)
		}
		seen[l.Code] = true
	}

	if SupportedLanguages[0].Code != DefaultLanguage {
		t.Errorf("first language should be the default, got %q", SupportedLanguages[0].Code)
	}
}

func TestLanguageLabel(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"en", "Inggris"},
		{"ja", "Jepang"},
		{"zh", "Mandarin"},
		{"ceb", "Cebuano"},
		{"xx", "xx"}, // fallback to the code
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := LanguageLabel(tt.code); got != tt.expected {
				t.Errorf("LanguageLabel(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestPromptLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"en", "English"},
		{"ar", "Arabic"},
		{"pt", "Portuguese"},
		{"sw", "Swahili"},
		{"xx", "English"},
		{"", "English"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := PromptLanguageName(tt.code); got != tt.expected {
				t.Errorf("PromptLanguageName(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestVoiceLocale(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"id", "id-ID"},
		{"en", "en-US"},
		{"ja", "ja-JP"},
		{"pt_BR", "pt-BR"},
		{"zh-TW", "zh-CN"},
		{"sw", FallbackVoiceLocale},
		{"", FallbackVoiceLocale},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := VoiceLocale(tt.code); got != tt.expected {
				t.Errorf("VoiceLocale(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"ar", "rtl"},
		{"he", "rtl"},
		{"fa", "rtl"},
		{"ur", "rtl"},
		{"en", "ltr"},
		{"ja", "ltr"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Direction(tt.code); got != tt.expected {
				t.Errorf("Direction(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestLookupTone(t *testing.T) {
	if len(TranslationTones) != 6 {
		t.Fatalf("expected 6 tones, got %d", len(TranslationTones))
	}

	tone, ok := LookupTone(ToneProfessional)
	if !ok {
		t.Fatal("professional tone not found")
	}
	if tone.Description != "Gaya bahasa profesional untuk bisnis" {
		t.Errorf("unexpected description %q", tone.Description)
	}

	if _, ok := LookupTone("sarcastic"); ok {
		t.Error("unknown tone should not be found")
	}

	names := ToneNames()
	want := []string{"formal", "casual", "friendly", "professional", "simple", "persuasive"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ToneNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLanguageEntries(t *testing.T) {
	entries := LanguageEntries()
	if len(entries) != len(SupportedLanguages) {
		t.Fatalf("LanguageEntries() returned %d entries, want %d", len(entries), len(SupportedLanguages))
	}

	byCode := make(map[string]LanguageEntry, len(entries))
	for i, e := range entries {
		if e.Code != SupportedLanguages[i].Code {
			t.Errorf("entry %d = %q, want catalog order %q", i, e.Code, SupportedLanguages[i].Code)
		}
		byCode[e.Code] = e
	}

	if got := byCode["ar"].Direction; got != "rtl" {
		t.Errorf("ar direction = %q, want rtl", got)
	}
	if got := byCode["en"].Direction; got != "ltr" {
		t.Errorf("en direction = %q, want ltr", got)
	}
}
