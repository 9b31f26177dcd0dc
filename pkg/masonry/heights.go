package masonry

import "math"

// Heights records discovered item heights keyed by stable identity.
//
// Entries are never evicted. Keys that are no longer in the item list stay in
// the cache and are reused if the item comes back. Growth is bounded by the
// number of distinct items ever seen.
type Heights struct {
	m map[Key]float64
}

// NewHeights returns an empty cache.
func NewHeights() *Heights {
	return &Heights{m: make(map[Key]float64)}
}

// Get returns the recorded height for k.
func (h *Heights) Get(k Key) (float64, bool) {
	v, ok := h.m[k]
	return v, ok
}

// Set records height for k and reports whether the cache changed. Negative
// and non-finite heights are ignored.
func (h *Heights) Set(k Key, height float64) bool {
	if height < 0 || math.IsNaN(height) || math.IsInf(height, 0) {
		return false
	}
	if old, ok := h.m[k]; ok && old == height {
		return false
	}
	h.m[k] = height
	return true
}

// Len returns the number of recorded heights.
func (h *Heights) Len() int { return len(h.m) }

// Snapshot returns a copy of the cache contents.
func (h *Heights) Snapshot() map[Key]float64 {
	out := make(map[Key]float64, len(h.m))
	for k, v := range h.m {
		out[k] = v
	}
	return out
}

// replace swaps the whole cache for a copy of m, dropping invalid entries.
func (h *Heights) replace(m map[Key]float64) {
	h.m = make(map[Key]float64, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
}
