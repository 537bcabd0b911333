package inglify

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of the text. The text is hashed
// verbatim since the model sees it verbatim.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and target language.
func CacheKey(hash, targetLang string) string {
	return hash + ":" + targetLang
}

// CacheKeyExtended generates a cache key that also separates by model, so
// a cache shared by several providers never crosses their replies.
func CacheKeyExtended(hash, targetLang, model string) string {
	return hash + ":" + targetLang + ":" + model
}
