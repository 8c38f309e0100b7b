package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Keyer builds cache keys for translations.
type Keyer interface {
	TranslationKey(provider, source, target, text string) string
}

// DefaultKeyer builds keys of the form "translation:<provider>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TranslationKey hashes the language pair and the text. Codes are
// case-folded, the text is not.
func (DefaultKeyer) TranslationKey(provider, source, target, text string) string {
	parts, _ := json.Marshal([]string{strings.ToLower(source), strings.ToLower(target), text})
	return "translation:" + provider + ":" + Hash(parts)
}

// TranslationKey is DefaultKeyer{}.TranslationKey.
func TranslationKey(provider, source, target, text string) string {
	return DefaultKeyer{}.TranslationKey(provider, source, target, text)
}

// ScopedKeyer prefixes another Keyer's keys, so that several penman
// deployments can share one Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes inner's keys with prefix, e.g. "penman:staging:".
// A nil inner means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TranslationKey(provider, source, target, text string) string {
	return k.prefix + k.inner.TranslationKey(provider, source, target, text)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
