package masonry

import (
	"math"
	"slices"
	"testing"
)

func TestResolveColumns(t *testing.T) {
	md := Breakpoints{Default: 2, Thresholds: []Threshold{{MinWidth: 768, Columns: 4}}}

	tests := []struct {
		name      string
		width     float64
		gap       float64
		cols      Columns
		wantCount int
		wantWidth float64
	}{
		{
			name:      "auto fits three",
			width:     1000,
			gap:       16,
			cols:      AutoColumns(250),
			wantCount: 3,
			wantWidth: (1000 - 2*16) / 3.0,
		},
		{
			name:      "auto narrower than one column",
			width:     100,
			gap:       16,
			cols:      AutoColumns(250),
			wantCount: 1,
			wantWidth: 100,
		},
		{
			name:      "auto exact fit without trailing gap",
			width:     516,
			gap:       16,
			cols:      AutoColumns(250),
			wantCount: 2,
			wantWidth: 250,
		},
		{
			name:      "auto default min width",
			width:     520,
			gap:       0,
			cols:      Columns{},
			wantCount: 2,
			wantWidth: 260,
		},
		{
			name:      "unmeasured auto",
			width:     0,
			gap:       16,
			cols:      AutoColumns(300),
			wantCount: 1,
			wantWidth: 300,
		},
		{
			name:      "unmeasured fixed",
			width:     0,
			gap:       16,
			cols:      FixedColumns(4),
			wantCount: 1,
			wantWidth: DefaultColumnWidth,
		},
		{
			name:      "fixed",
			width:     800,
			gap:       20,
			cols:      FixedColumns(4),
			wantCount: 4,
			wantWidth: 185,
		},
		{
			name:      "fixed zero clamps",
			width:     800,
			gap:       16,
			cols:      FixedColumns(0),
			wantCount: 1,
			wantWidth: 800,
		},
		{
			name:      "fixed negative clamps",
			width:     800,
			gap:       16,
			cols:      Columns{Count: -3},
			wantCount: 1,
			wantWidth: 800,
		},
		{
			name:      "fixed wins over breakpoints",
			width:     800,
			gap:       0,
			cols:      Columns{Count: 5, Breakpoints: &md},
			wantCount: 5,
			wantWidth: 160,
		},
		{
			name:      "breakpoint matches md",
			width:     800,
			gap:       16,
			cols:      ResponsiveColumns(md),
			wantCount: 4,
			wantWidth: 188,
		},
		{
			name:      "breakpoint falls back to default",
			width:     700,
			gap:       0,
			cols:      ResponsiveColumns(md),
			wantCount: 2,
			wantWidth: 350,
		},
		{
			name:      "negative gap clamps",
			width:     100,
			gap:       -10,
			cols:      AutoColumns(50),
			wantCount: 2,
			wantWidth: 50,
		},
		{
			name:      "NaN width is unmeasured",
			width:     math.NaN(),
			gap:       16,
			cols:      AutoColumns(250),
			wantCount: 1,
			wantWidth: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, width := ResolveColumns(tt.width, tt.gap, tt.cols)
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
			if math.Abs(width-tt.wantWidth) > 1e-9 {
				t.Errorf("width = %v, want %v", width, tt.wantWidth)
			}
		})
	}
}

func TestBreakpointsResolve(t *testing.T) {
	bp := Breakpoints{
		Default: 1,
		Thresholds: []Threshold{
			{MinWidth: 1024, Columns: 5},
			{MinWidth: 640, Columns: 3},
		},
	}

	tests := []struct {
		width float64
		want  int
	}{
		{0, 1},
		{639, 1},
		{640, 3},
		{1023, 3},
		{1024, 5},
		{4000, 5},
	}

	for _, tt := range tests {
		if got := bp.Resolve(tt.width); got != tt.want {
			t.Errorf("Resolve(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBreakpointsDefault(t *testing.T) {
	var bp Breakpoints
	if got := bp.Resolve(300); got != DefaultBreakpointColumns {
		t.Errorf("empty table = %d, want %d", got, DefaultBreakpointColumns)
	}
}

func TestNewBreakpoints(t *testing.T) {
	bp, unknown := NewBreakpoints(map[string]int{"default": 2, "md": 4, "xl": 6, "huge": 9})

	if bp.Default != 2 {
		t.Errorf("Default = %d, want 2", bp.Default)
	}
	if !slices.Equal(unknown, []string{"huge"}) {
		t.Errorf("unknown = %v, want [huge]", unknown)
	}

	tests := []struct {
		width float64
		want  int
	}{
		{500, 2},
		{800, 4},
		{1300, 6},
	}
	for _, tt := range tests {
		if got := bp.Resolve(tt.width); got != tt.want {
			t.Errorf("Resolve(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}
