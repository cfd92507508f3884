// Package pagecode orders composite page identifiers such as "123_456".
//
// A page code is a sequence of integer components joined by an underscore.
// Codes are compared component by component from the left; when one code is
// a prefix of the other the shorter one sorts first.
package pagecode

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Separator joins the components of a page code.
const Separator = "_"

// ErrMalformed is returned when a page code has a non-numeric component.
var ErrMalformed = errors.New("pagecode: malformed page code")

// Code is a parsed page code.
type Code []int

// Parse splits a page code into its integer components.
func Parse(code string) (Code, error) {
	parts := strings.Split(code, Separator)
	out := make(Code, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w %q: component %q is not an integer", ErrMalformed, code, part)
		}
		out = append(out, n)
	}
	return out, nil
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
func Compare(a, b Code) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Sort returns the codes in ascending page order. Every code is parsed
// before any ordering takes place, so a malformed code fails the whole call.
func Sort(codes []string) ([]string, error) {
	type keyed struct {
		raw  string
		code Code
	}
	items := make([]keyed, 0, len(codes))
	for _, c := range codes {
		parsed, err := Parse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, keyed{raw: c, code: parsed})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return Compare(items[i].code, items[j].code) < 0
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out, nil
}
