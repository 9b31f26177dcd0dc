package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout of a board.
	LayoutKey(boardHash string, opts LayoutKeyOpts) string

	// HeightsKey identifies the persisted measured heights of a board.
	HeightsKey(board string) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Width       float64        `json:"width"`
	Gap         float64        `json:"gap"`
	ColumnWidth float64        `json:"column_width"`
	Columns     int            `json:"columns,omitempty"`
	Breakpoints map[string]int `json:"breakpoints,omitempty"`
	Placeholder float64        `json:"placeholder"`
	HeightsHash string         `json:"heights_hash,omitempty"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the board hash together with the layout options.
func (DefaultKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", boardHash, opts)
}

// HeightsKey keys heights by board name; they are updated in place.
func (DefaultKeyer) HeightsKey(board string) string {
	return "heights:" + board
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
