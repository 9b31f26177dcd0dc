package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/board"
)

// setupWorkspace points configuration at a temp directory with a file cache
// and writes a three-tile board.
func setupWorkspace(t *testing.T) (dir, boardPath string) {
	t.Helper()
	dir = t.TempDir()

	cfg := "[log]\nlevel = \"warn\"\n\n[cache]\nbackend = \"file\"\ndir = \"" +
		filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n"
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MASONRY_CONFIG", cfgPath)

	boardPath = filepath.Join(dir, "gallery.json")
	b := board.Board{
		Name: "gallery",
		Tiles: []board.Tile{
			{ID: "a", Label: "Alpha", Width: 400, Height: 200},
			{ID: "b"},
			{ID: "c", Width: 100, Height: 100, Measured: 100},
		},
	}
	if err := board.WriteBoardFile(boardPath, b); err != nil {
		t.Fatal(err)
	}
	return dir, boardPath
}

func runCLI(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return c, root.ExecuteContext(context.Background())
}

var layoutArgs = []string{"--width", "516", "--gap", "16", "--column-width", "250"}

func TestLoadConfigAppliesLogLevel(t *testing.T) {
	setupWorkspace(t)

	c, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := c.Logger.GetLevel(); got != log.WarnLevel {
		t.Errorf("level = %v, want configured warn", got)
	}
}

func TestLayoutMeasureFlow(t *testing.T) {
	dir, boardPath := setupWorkspace(t)
	out := filepath.Join(dir, "out.layout.json")

	if _, err := runCLI(t, append([]string{"layout", boardPath, "-o", out}, layoutArgs...)...); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := board.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.ColumnCount != 2 || l.Height != 241 {
		t.Fatalf("layout = %d columns, height %v; want 2, 241", l.ColumnCount, l.Height)
	}

	if _, err := runCLI(t, "measure", "gallery", "b=50"); err != nil {
		t.Fatalf("measure: %v", err)
	}
	if _, err := runCLI(t, append([]string{"layout", boardPath, "-o", out}, layoutArgs...)...); err != nil {
		t.Fatalf("layout after measure: %v", err)
	}
	l, err = board.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	// b shrinks to 50, so c moves under it in column 1.
	if l.Height != 166 {
		t.Errorf("height = %v, want 166", l.Height)
	}
	if c := l.Tiles[2]; c.Column != 1 || c.Y != 66 {
		t.Errorf("c = column %d y %v, want column 1 y 66", c.Column, c.Y)
	}

	if _, err := runCLI(t, "measure", boardPath, "--reset"); err != nil {
		t.Fatalf("measure --reset: %v", err)
	}
	if _, err := runCLI(t, append([]string{"layout", boardPath, "-o", out}, layoutArgs...)...); err != nil {
		t.Fatalf("layout after reset: %v", err)
	}
	l, _ = board.ReadLayoutFile(out)
	if l.Height != 241 {
		t.Errorf("height after reset = %v, want 241", l.Height)
	}
}

func TestRenderWritesFormats(t *testing.T) {
	dir, boardPath := setupWorkspace(t)

	args := append([]string{"render", boardPath, "-f", "svg,txt,json", "--labels"}, layoutArgs...)
	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{"gallery.svg", "gallery.txt", "gallery.layout.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	svg, _ := os.ReadFile(filepath.Join(dir, "gallery.svg"))
	if !strings.Contains(string(svg), "Alpha") {
		t.Error("svg missing tile label")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, boardPath := setupWorkspace(t)
	if _, err := runCLI(t, "render", boardPath, "-f", "pdf"); err == nil {
		t.Error("render -f pdf should fail")
	}
}

func TestGenerate(t *testing.T) {
	dir, _ := setupWorkspace(t)
	out := filepath.Join(dir, "random.toml")

	if _, err := runCLI(t, "generate", "-n", "5", "--seed", "7", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := board.ReadBoardFile(out)
	if err != nil {
		t.Fatalf("read generated board: %v", err)
	}
	if b.Name != "random" || len(b.Tiles) != 5 {
		t.Errorf("board = %q with %d tiles, want random with 5", b.Name, len(b.Tiles))
	}

	if _, err := runCLI(t, "generate", "-n", "0", "-o", out); err == nil {
		t.Error("generate -n 0 should fail")
	}
}

func TestCacheClear(t *testing.T) {
	dir, boardPath := setupWorkspace(t)

	if _, err := runCLI(t, append([]string{"layout", boardPath, "-o", filepath.Join(dir, "x.layout.json")}, layoutArgs...)...); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	var files int
	_ = filepath.WalkDir(filepath.Join(dir, "cache"), func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d cache files left after clear", files)
	}
}
