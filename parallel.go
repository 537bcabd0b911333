package inglify

import (
	"context"
	"sync"
)

// LanguageResult is the outcome of one target language in a fan-out.
type LanguageResult struct {
	TargetLanguage string
	Response       *TranslationResponse
	Err            error
}

// TranslateLanguages translates text into each target language using at
// most concurrency calls at a time. Results keep the order of languages and
// duplicate codes are translated once. A failure only affects its own
// entry.
func TranslateLanguages(ctx context.Context, t Translator, text string, languages []string, concurrency int) []LanguageResult {
	if len(languages) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	// Deduplicate codes first, preserving order
	var unique []string
	seen := make(map[string]bool)
	for _, code := range languages {
		if !seen[code] {
			seen[code] = true
			unique = append(unique, code)
		}
	}

	type indexed struct {
		index  int
		result LanguageResult
	}

	results := make(chan indexed, len(unique))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, code := range unique {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- indexed{i, LanguageResult{TargetLanguage: code, Err: ctx.Err()}}
				return
			}

			resp, err := t.Translate(ctx, TranslationRequest{Text: text, TargetLanguage: code})
			results <- indexed{i, LanguageResult{TargetLanguage: code, Response: resp, Err: err}}
		}(i, code)
	}

	// Close results channel when all goroutines complete
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]LanguageResult, len(unique))
	for r := range results {
		out[r.index] = r.result
	}
	return out
}
