// Package naming converts prop and field names to the camelCase form used on
// the Inertia wire format.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelCase lowercases the leading run of upper-case letters in s.
//
// When the run is followed by a lower-case letter, the last upper-case letter
// starts the next word and is kept:
//
//	"TestFunc" -> "testFunc"
//	"URLValue" -> "urlValue"
//	"ID"       -> "id"
//	"testFunc" -> "testFunc"
//
// Names that already start with a lower-case letter are returned unchanged,
// so applying CamelCase twice is a no-op.
func CamelCase(s string) string {
	if s == "" {
		return s
	}
	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return s
	}

	runes := []rune(s)
	for i := range runes {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		if i > 0 && i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) {
			// A space ends the run; the letter before it belongs to it.
			if runes[i+1] == ' ' {
				runes[i] = unicode.ToLower(runes[i])
			}
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// EqualFold reports whether two prop names refer to the same prop.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// SplitList parses a comma-separated header value into trimmed, non-empty
// names.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// Set is a case-insensitive set of names.
type Set map[string]struct{}

// NewSet builds a Set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[strings.ToLower(n)] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set, ignoring case.
func (s Set) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return len(s)
}
