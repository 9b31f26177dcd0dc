package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// EncodeHeights serializes a height cache as a JSON object keyed by
// [masonry.Key.String].
func EncodeHeights(heights map[masonry.Key]float64) ([]byte, error) {
	m := make(map[string]float64, len(heights))
	for k, v := range heights {
		m[k.String()] = v
	}
	return json.Marshal(m)
}

// DecodeHeights parses the output of [EncodeHeights].
func DecodeHeights(data []byte) (map[masonry.Key]float64, error) {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode heights")
	}
	return ParseHeights(m)
}

// ParseHeights converts externally keyed heights into engine keys. Keys use
// the "s:"/"i:" encoding; bare text is a tile ID.
func ParseHeights(m map[string]float64) (map[masonry.Key]float64, error) {
	out := make(map[masonry.Key]float64, len(m))
	for s, v := range m {
		k, err := masonry.ParseKey(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "height key %q", s)
		}
		out[k] = v
	}
	return out, nil
}

// hashHeights returns a stable hash of a height cache, or "" when it is empty.
func hashHeights(heights map[masonry.Key]float64) string {
	if len(heights) == 0 {
		return ""
	}
	data, err := EncodeHeights(heights)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
