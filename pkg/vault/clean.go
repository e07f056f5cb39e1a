package vault

import (
	"net/url"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nameCutset is trimmed from both ends of a cleaned name. Interior
// punctuation is preserved so names like "C++" or "example.com" survive.
const nameCutset = " \t\r\n-–—_.,;:"

// CleanURL normalizes a URL string so textually different but semantically
// identical URLs compare equal: surrounding whitespace is trimmed, scheme and
// host are lowercased, and trailing slashes are stripped from the path.
// Strings that do not parse as absolute URLs are returned trimmed but
// otherwise untouched. Idempotent; never fails.
func CleanURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// CleanName normalizes a display name without altering letter case: the text
// is NFC-normalized, runs of whitespace collapse to single spaces, and
// surrounding whitespace and joining punctuation are trimmed. Idempotent;
// never fails.
func CleanName(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, nameCutset)
}

// Unique returns a new slice containing each distinct value from items
// exactly once, preserving first-occurrence order. Distinctness is deep
// structural equality, so mapping-valued items are duplicates only when
// every nested key and value match. Tolerates mixed element types.
func Unique[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		dup := false
		for _, seen := range out {
			if StructuralEqual(item, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, item)
		}
	}
	return out
}

// StructuralEqual reports deep equality of two decoded values. It recurses
// through maps and lists, compares scalars by value, and treats all numeric
// kinds uniformly, so a value that went through JSON decoding twice still
// compares equal to its original.
func StructuralEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, present := bv[k]
			if !present || !StructuralEqual(v, bval) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !StructuralEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case []string:
		bv, ok := b.([]string)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	if af, ok := asFloat(a); ok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// asFloat normalizes the numeric kinds JSON and YAML decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
