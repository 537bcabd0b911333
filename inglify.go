// Package inglify translates Indonesian text into six stylistically distinct
// registers (formal, casual, friendly, professional, simple, persuasive) using
// a large-language-model backend.
//
// The root package holds the data model, the tone and language catalog, the
// prompt builder and the Translation Gateway. Subpackages provide model
// backends (provider), key/value persistence (store), the bounded history
// log (history) and the client-side session coordinator (session).
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/inglify/inglify"
//	    "github.com/inglify/inglify/provider"
//	)
//
//	func main() {
//	    p := provider.NewGeminiProvider(provider.GeminiConfig{
//	        APIKey: os.Getenv("GEMINI_API_KEY"),
//	    })
//
//	    gw := inglify.NewGateway(p)
//
//	    resp, err := gw.Translate(context.Background(), inglify.TranslationRequest{
//	        Text:           "Selamat pagi",
//	        TargetLanguage: "en",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, r := range resp.Results {
//	        fmt.Printf("%s: %s\n", r.Tone, r.Translation)
//	    }
//	}
package inglify
