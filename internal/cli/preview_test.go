package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

func previewBoard() board.Board {
	return board.Board{
		Name: "gallery",
		Tiles: []board.Tile{
			{ID: "a", Label: "Alpha", Width: 400, Height: 200},
			{ID: "b", Label: "Beta"},
			{ID: "c", Label: "Gamma", Width: 100, Height: 100},
		},
	}
}

func newTestPreview(t *testing.T) *previewModel {
	t.Helper()
	gap := 16.0
	m := newPreviewModel(previewBoard(), nil, pipeline.Options{Gap: &gap, ColumnWidth: 250})
	t.Cleanup(m.close)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewStartsUnmeasured(t *testing.T) {
	m := newTestPreview(t)

	if w := m.engine.Width(); w != 0 {
		t.Errorf("Width() = %v, want 0 before the first resize", w)
	}
	if n := m.engine.ColumnCount(); n != 1 {
		t.Errorf("ColumnCount() = %d, want 1 while unmeasured", n)
	}
	if len(m.lines) != 0 {
		t.Errorf("lines = %d, want none before the first resize", len(m.lines))
	}
}

func TestPreviewReflowsOnResize(t *testing.T) {
	m := newTestPreview(t)

	m.Update(tea.WindowSizeMsg{Width: 52, Height: 20})
	if w := m.engine.Width(); w != 520 {
		t.Errorf("Width() = %v, want 520", w)
	}
	if n := m.engine.ColumnCount(); n != 2 {
		t.Errorf("ColumnCount() = %d, want 2", n)
	}
	if len(m.lines) == 0 {
		t.Fatal("no lines drawn after resize")
	}

	m.Update(tea.WindowSizeMsg{Width: 20, Height: 20})
	if n := m.engine.ColumnCount(); n != 1 {
		t.Errorf("ColumnCount() = %d after shrinking, want 1", n)
	}

	view := m.View()
	if !strings.Contains(view, "gallery") {
		t.Errorf("View() missing board name:\n%s", view)
	}
}

func TestPreviewColumnWidthKeys(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 52, Height: 20})

	m.Update(keyMsg("+"))
	if m.minWidth != 300 {
		t.Errorf("minWidth = %v, want 300", m.minWidth)
	}
	if n := m.engine.ColumnCount(); n != 1 {
		t.Errorf("ColumnCount() = %d, want 1 at min width 300", n)
	}

	m.Update(keyMsg("-"))
	m.Update(keyMsg("-"))
	if n := m.engine.ColumnCount(); n != 2 {
		t.Errorf("ColumnCount() = %d, want 2 at min width 200", n)
	}

	for range 10 {
		m.Update(keyMsg("-"))
	}
	if m.minWidth != columnWidthStep {
		t.Errorf("minWidth = %v, want floor %v", m.minWidth, columnWidthStep)
	}
}

func TestPreviewScroll(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if m.maxOffset() == 0 {
		t.Fatalf("expected the single-column board to overflow %d rows", m.viewRows())
	}

	m.Update(keyMsg("k"))
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0 at top", m.offset)
	}
	m.Update(keyMsg("j"))
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	for range 100 {
		m.Update(keyMsg("j"))
	}
	if m.offset != m.maxOffset() {
		t.Errorf("offset = %d, want clamped to %d", m.offset, m.maxOffset())
	}
}

func TestPreviewRestoresHeights(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 52, Height: 20})
	before := m.engine.ContainerHeight()

	m.Update(heightsMsg{masonry.StringKey("b"): 50})
	if h, ok := m.engine.MeasuredHeight(masonry.StringKey("b")); !ok || h != 50 {
		t.Errorf("MeasuredHeight(b) = %v, %v; want 50, true", h, ok)
	}
	if after := m.engine.ContainerHeight(); after >= before {
		t.Errorf("ContainerHeight() = %v, want less than %v after shrinking b", after, before)
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
