package inglify

import "time"

// MaxTextLength is the maximum number of characters accepted as source text.
const MaxTextLength = 500

// TranslationTone describes one of the six fixed stylistic registers.
type TranslationTone struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Tone names.
const (
	ToneFormal       = "formal"
	ToneCasual       = "casual"
	ToneFriendly     = "friendly"
	ToneProfessional = "professional"
	ToneSimple       = "simple"
	TonePersuasive   = "persuasive"
)

// Language is a supported target language.
type Language struct {
	Code  string `json:"code"`  // Identifier sent in requests (e.g., "en", "ceb")
	Name  string `json:"name"`  // English name, used in prompts
	Label string `json:"label"` // Indonesian display name
}

// TranslationRequest is the payload accepted by the gateway.
type TranslationRequest struct {
	Text           string `json:"text" validate:"required,max=500"`
	TargetLanguage string `json:"targetLanguage" validate:"required"`
}

// TranslationResult is one tone's translation.
type TranslationResult struct {
	Tone        string `json:"tone"`
	Translation string `json:"translation"`
}

// TranslationResponse is produced once per successful gateway call.
type TranslationResponse struct {
	Results        []TranslationResult `json:"results"`
	OriginalText   string              `json:"originalText"`
	TargetLanguage string              `json:"targetLanguage"`
	Timestamp      int64               `json:"timestamp"` // Milliseconds since epoch
}

// Time returns the response timestamp as a time.Time.
func (r TranslationResponse) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// ByTone keys the results by tone name. Names outside the tone catalog are
// dropped; when a tone appears more than once the first entry wins.
func (r TranslationResponse) ByTone() map[string]string {
	out := make(map[string]string, len(TranslationTones))
	for _, res := range r.Results {
		if _, ok := LookupTone(res.Tone); !ok {
			continue
		}
		if _, seen := out[res.Tone]; seen {
			continue
		}
		out[res.Tone] = res.Translation
	}
	return out
}

// HistoryItem is a past translation session as stored in the history log.
type HistoryItem struct {
	ID             string              `json:"id"`
	OriginalText   string              `json:"originalText"`
	TargetLanguage string              `json:"targetLanguage"`
	Results        []TranslationResult `json:"results"`
	Timestamp      int64               `json:"timestamp"`
}

// NewHistoryItem derives a history entry from an accepted response.
func NewHistoryItem(id string, resp TranslationResponse) HistoryItem {
	results := make([]TranslationResult, len(resp.Results))
	copy(results, resp.Results)
	return HistoryItem{
		ID:             id,
		OriginalText:   resp.OriginalText,
		TargetLanguage: resp.TargetLanguage,
		Results:        results,
		Timestamp:      resp.Timestamp,
	}
}

// Response rebuilds the response the item was derived from.
func (h HistoryItem) Response() TranslationResponse {
	results := make([]TranslationResult, len(h.Results))
	copy(results, h.Results)
	return TranslationResponse{
		Results:        results,
		OriginalText:   h.OriginalText,
		TargetLanguage: h.TargetLanguage,
		Timestamp:      h.Timestamp,
	}
}

// GenerationConfig holds the sampling parameters sent to the model.
type GenerationConfig struct {
	Temperature     float32
	TopK            int
	TopP            float32
	MaxOutputTokens int
}

// DefaultGenerationConfig returns the fixed generation parameters used for
// every translation.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 2048,
	}
}
