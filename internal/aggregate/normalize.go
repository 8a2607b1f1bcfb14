package aggregate

import (
	"regexp"

	"github.com/vburojevic/faultline/internal/domain"
)

var (
	uuidRe   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	hexRe    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	numberRe = regexp.MustCompile(`\d+`)
)

// maxKeyLen caps normalized keys so one noisy value cannot blow up a report
const maxKeyLen = 200

// NormalizeKey replaces variable parts of a key so similar keys group together:
// "/p/Run-Short-32138/_/prod3860019" becomes "/p/Run-Short-<n>/_/prod<n>".
func NormalizeKey(key string) string {
	key = uuidRe.ReplaceAllString(key, "<uuid>")
	key = hexRe.ReplaceAllString(key, "<addr>")
	key = numberRe.ReplaceAllString(key, "<n>")

	if len(key) > maxKeyLen {
		key = key[:maxKeyLen] + "..."
	}
	return key
}

type normalizing struct {
	Extractor
}

// Normalize wraps x so every key it extracts goes through NormalizeKey
func Normalize(x Extractor) Extractor {
	return normalizing{Extractor: x}
}

func (n normalizing) Extract(event domain.Event) (string, bool) {
	key, ok := n.Extractor.Extract(event)
	if !ok {
		return "", false
	}
	return NormalizeKey(key), true
}
