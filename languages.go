package inglify

import "strings"

// SupportedLanguages lists every target language offered to the user, in
// display order.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English", Label: "Inggris"},
	{Code: "ja", Name: "Japanese", Label: "Jepang"},
	{Code: "ko", Name: "Korean", Label: "Korea"},
	{Code: "zh", Name: "Chinese", Label: "Mandarin"},
	{Code: "fr", Name: "French", Label: "Prancis"},
	{Code: "es", Name: "Spanish", Label: "Spanyol"},
	{Code: "de", Name: "German", Label: "Jerman"},
	{Code: "ar", Name: "Arabic", Label: "Arab"},
	{Code: "pt", Name: "Portuguese", Label: "Portugis"},
	{Code: "ru", Name: "Russian", Label: "Rusia"},
	{Code: "it", Name: "Italian", Label: "Italia"},
	{Code: "nl", Name: "Dutch", Label: "Belanda"},
	{Code: "sv", Name: "Swedish", Label: "Swedia"},
	{Code: "no", Name: "Norwegian", Label: "Norwegia"},
	{Code: "da", Name: "Danish", Label: "Denmark"},
	{Code: "fi", Name: "Finnish", Label: "Finlandia"},
	{Code: "pl", Name: "Polish", Label: "Polandia"},
	{Code: "cs", Name: "Czech", Label: "Ceko"},
	{Code: "sk", Name: "Slovak", Label: "Slovakia"},
	{Code: "hu", Name: "Hungarian", Label: "Hungaria"},
	{Code: "ro", Name: "Romanian", Label: "Rumania"},
	{Code: "bg", Name: "Bulgarian", Label: "Bulgaria"},
	{Code: "hr", Name: "Croatian", Label: "Kroasia"},
	{Code: "sr", Name: "Serbian", Label: "Serbia"},
	{Code: "sl", Name: "Slovenian", Label: "Slovenia"},
	{Code: "et", Name: "Estonian", Label: "Estonia"},
	{Code: "lv", Name: "Latvian", Label: "Latvia"},
	{Code: "lt", Name: "Lithuanian", Label: "Lithuania"},
	{Code: "th", Name: "Thai", Label: "Thailand"},
	{Code: "vi", Name: "Vietnamese", Label: "Vietnam"},
	{Code: "hi", Name: "Hindi", Label: "Hindi"},
	{Code: "bn", Name: "Bengali", Label: "Bengali"},
	{Code: "ur", Name: "Urdu", Label: "Urdu"},
	{Code: "ta", Name: "Tamil", Label: "Tamil"},
	{Code: "te", Name: "Telugu", Label: "Telugu"},
	{Code: "ml", Name: "Malayalam", Label: "Malayalam"},
	{Code: "kn", Name: "Kannada", Label: "Kannada"},
	{Code: "gu", Name: "Gujarati", Label: "Gujarati"},
	{Code: "pa", Name: "Punjabi", Label: "Punjabi"},
	{Code: "mr", Name: "Marathi", Label: "Marathi"},
	{Code: "ne", Name: "Nepali", Label: "Nepal"},
	{Code: "si", Name: "Sinhala", Label: "Sinhala"},
	{Code: "my", Name: "Myanmar", Label: "Myanmar"},
	{Code: "km", Name: "Khmer", Label: "Khmer"},
	{Code: "lo", Name: "Lao", Label: "Laos"},
	{Code: "ka", Name: "Georgian", Label: "Georgia"},
	{Code: "am", Name: "Amharic", Label: "Amharic"},
	{Code: "sw", Name: "Swahili", Label: "Swahili"},
	{Code: "zu", Name: "Zulu", Label: "Zulu"},
	{Code: "af", Name: "Afrikaans", Label: "Afrikaans"},
	{Code: "he", Name: "Hebrew", Label: "Ibrani"},
	{Code: "fa", Name: "Persian", Label: "Persia"},
	{Code: "tr", Name: "Turkish", Label: "Turki"},
	{Code: "az", Name: "Azerbaijani", Label: "Azerbaijan"},
	{Code: "kk", Name: "Kazakh", Label: "Kazakh"},
	{Code: "ky", Name: "Kyrgyz", Label: "Kyrgyz"},
	{Code: "uz", Name: "Uzbek", Label: "Uzbek"},
	{Code: "tg", Name: "Tajik", Label: "Tajik"},
	{Code: "mn", Name: "Mongolian", Label: "Mongolia"},
	{Code: "ms", Name: "Malay", Label: "Melayu"},
	{Code: "tl", Name: "Filipino", Label: "Filipino"},
	{Code: "ceb", Name: "Cebuano", Label: "Cebuano"},
	{Code: "haw", Name: "Hawaiian", Label: "Hawaii"},
	{Code: "mg", Name: "Malagasy", Label: "Malagasy"},
	{Code: "mt", Name: "Maltese", Label: "Malta"},
	{Code: "is", Name: "Icelandic", Label: "Islandia"},
	{Code: "ga", Name: "Irish", Label: "Irlandia"},
	{Code: "cy", Name: "Welsh", Label: "Wales"},
	{Code: "eu", Name: "Basque", Label: "Basque"},
	{Code: "ca", Name: "Catalan", Label: "Katalan"},
	{Code: "gl", Name: "Galician", Label: "Galicia"},
	{Code: "eo", Name: "Esperanto", Label: "Esperanto"},
	{Code: "la", Name: "Latin", Label: "Latin"},
}

// DefaultLanguage is the target language selected when a session starts.
const DefaultLanguage = "en"

// SourceLanguage is the language of all input text.
const SourceLanguage = "id"

// voiceLocales maps language codes to speech locales. Codes without an entry
// are spoken with the generic English voice.
var voiceLocales = map[string]string{
	"id": "id-ID",
	"en": "en-US",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"zh": "zh-CN",
	"fr": "fr-FR",
	"es": "es-ES",
	"de": "de-DE",
	"ar": "ar-SA",
	"pt": "pt-BR",
	"ru": "ru-RU",
	"it": "it-IT",
	"nl": "nl-NL",
	"sv": "sv-SE",
	"no": "nb-NO",
	"da": "da-DK",
	"fi": "fi-FI",
	"pl": "pl-PL",
	"cs": "cs-CZ",
	"hu": "hu-HU",
	"ro": "ro-RO",
	"tr": "tr-TR",
	"th": "th-TH",
	"vi": "vi-VN",
	"hi": "hi-IN",
	"he": "he-IL",
	"ms": "ms-MY",
}

// FallbackVoiceLocale is used for languages without a dedicated voice.
const FallbackVoiceLocale = "en-US"

// RecognitionLocale is the locale speech input is captured in.
const RecognitionLocale = "id-ID"

// LookupLanguage returns the catalog entry for a language code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// IsSupported reports whether code is in the language catalog.
func IsSupported(code string) bool {
	_, ok := LookupLanguage(code)
	return ok
}

// LanguageLabel returns the Indonesian display label for a code.
// Falls back to the code itself if not found.
func LanguageLabel(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Label
	}
	return code
}

// PromptLanguageName returns the English language name used in prompts.
// Codes outside the catalog are prompted as English.
func PromptLanguageName(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	return "English"
}

// VoiceLocale returns the speech-synthesis locale for a language code.
func VoiceLocale(code string) string {
	base := strings.ToLower(strings.Split(strings.ReplaceAll(code, "_", "-"), "-")[0])
	if loc, ok := voiceLocales[base]; ok {
		return loc
	}
	return FallbackVoiceLocale
}

// rtlLanguages contains catalog codes written right-to-left.
var rtlLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
}

// Direction returns "rtl" for languages written right to left and "ltr"
// for everything else.
func Direction(code string) string {
	if rtlLanguages[strings.ToLower(code)] {
		return "rtl"
	}
	return "ltr"
}

// LanguageEntry is a catalog language as listed to clients, with the
// writing direction its translations should be rendered in.
type LanguageEntry struct {
	Language
	Direction string `json:"direction"`
}

// LanguageEntries returns the catalog in order with writing directions.
func LanguageEntries() []LanguageEntry {
	entries := make([]LanguageEntry, len(SupportedLanguages))
	for i, l := range SupportedLanguages {
		entries[i] = LanguageEntry{Language: l, Direction: Direction(l.Code)}
	}
	return entries
}
