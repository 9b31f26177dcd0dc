package masonry

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a logical item across list mutations. It holds either a
// string or an integer; the zero Key is the integer 0.
//
// Keys are comparable and can be used directly as map keys.
type Key struct {
	str   string
	num   int
	isStr bool
}

// StringKey returns a Key for a string identity.
func StringKey(s string) Key { return Key{str: s, isStr: true} }

// IntKey returns a Key for an integer identity.
func IntKey(n int) Key { return Key{num: n} }

// IsString reports whether k was built from a string.
func (k Key) IsString() bool { return k.isStr }

// Value returns the underlying string or int.
func (k Key) Value() any {
	if k.isStr {
		return k.str
	}
	return k.num
}

// String encodes k as "s:<value>" or "i:<value>". The encoding round-trips
// through [ParseKey].
func (k Key) String() string {
	if k.isStr {
		return "s:" + k.str
	}
	return "i:" + strconv.Itoa(k.num)
}

// ParseKey decodes a Key produced by [Key.String]. Input without a recognized
// prefix is treated as a string key.
func ParseKey(s string) (Key, error) {
	switch {
	case strings.HasPrefix(s, "s:"):
		return StringKey(s[2:]), nil
	case strings.HasPrefix(s, "i:"):
		n, err := strconv.Atoi(s[2:])
		if err != nil {
			return Key{}, fmt.Errorf("parse key %q: %w", s, err)
		}
		return IntKey(n), nil
	default:
		return StringKey(s), nil
	}
}

// KeyFunc extracts the stable identity of an item.
//
// Two items that are the same logical item must yield the same Key across
// recomputations, and distinct items present at the same time must yield
// distinct Keys. Duplicates are not detected: one item's measured height
// silently overwrites the other's.
type KeyFunc[T any] func(item T, index int) Key

// IndexKey keys items by their position in the list. It is the default
// extractor and is not reorder-safe: after an insertion or reorder, cached
// heights attach to whatever item now sits at that index.
func IndexKey[T any](_ T, index int) Key { return IntKey(index) }
