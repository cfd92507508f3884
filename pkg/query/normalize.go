package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// A Normalizer maps a raw OCR word to the form keywords are compared in.
// Normalizers must be safe for concurrent use.
type Normalizer func(string) string

// ErrUnsupportedNormalizer is returned by ParseNormalizer for a name with no
// registered normalizer, such as "stem" or "lemmatize" when the caller has
// not provided one.
var ErrUnsupportedNormalizer = errors.New("unsupported normalizer")

// None leaves words untouched.
func None(s string) string { return s }

// Normalize keeps the ASCII letters of s and lower-cases them:
// "Whale's," becomes "whales".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
			b.WriteByte(c)
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		}
	}
	return b.String()
}

// Fold applies NFKC normalization and full Unicode case folding, then keeps
// letters only: "Straße" becomes "strasse", "ﬁsh" becomes "fish".
func Fold(s string) string {
	folded := cases.Fold().String(norm.NFKC.String(s))
	return strings.Map(keepLetter, folded)
}

// Unaccent strips diacritics, lower-cases and keeps letters only:
// "Café" becomes "cafe".
func Unaccent(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.Map(keepLetter, strings.ToLower(result))
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }

func keepLetter(r rune) rune {
	if unicode.IsLetter(r) {
		return r
	}
	return -1
}

// Chain applies normalizers left to right.
func Chain(ns ...Normalizer) Normalizer {
	return func(s string) string {
		for _, n := range ns {
			s = n(s)
		}
		return s
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Normalizer{
		"none":      None,
		"normalize": Normalize,
		"fold":      Fold,
		"unaccent":  Unaccent,
	}
)

// Register makes a normalizer available to ParseNormalizer under name,
// replacing any previous registration. Stemmers and lemmatizers are plugged
// in this way.
func Register(name string, n Normalizer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = n
}

// ParseNormalizer returns the normalizer registered under name. Names are
// case-insensitive and an empty name selects None.
func ParseNormalizer(name string) (Normalizer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	n, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNormalizer, name)
	}
	return n, nil
}

// Normalizers lists the registered names in sorted order.
func Normalizers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func orNone(n Normalizer) Normalizer {
	if n == nil {
		return None
	}
	return n
}
