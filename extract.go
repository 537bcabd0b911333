package inglify

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the first balanced {...} span in text. Braces
// inside JSON strings are ignored. The span is not checked for validity; a
// first span that fails to decode is the caller's parse failure, and later
// spans are never consulted.
func ExtractJSONObject(text string) (string, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchBrace(text, start); end > start {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

type modelReply struct {
	Results []TranslationResult `json:"results"`
}

// ParseReply extracts the tone results from raw model text. The reply may
// wrap the JSON object in prose or code fences.
func ParseReply(raw string) ([]TranslationResult, error) {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Message: "no JSON object in model reply", Raw: raw}
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(obj), &reply); err != nil {
		return nil, &ParseError{Message: "malformed model reply", Cause: err, Raw: raw}
	}
	if reply.Results == nil {
		return nil, &ParseError{Message: "model reply has no results", Raw: raw}
	}

	return reply.Results, nil
}
