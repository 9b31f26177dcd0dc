package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/render/sink"
)

const (
	// pixelsPerCell maps one terminal column to container pixels.
	pixelsPerCell = 10.0

	// columnWidthStep is the +/- adjustment of the minimum column width.
	columnWidthStep = 50.0

	// previewChrome is the number of rows used by the header and footer.
	previewChrome = 3
)

var (
	previewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewFooterStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command, an interactive terminal view
// that reflows the board whenever the terminal is resized.
func (c *CLI) previewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "preview [board.json|board.toml]",
		Short: "Preview a board layout in the terminal",
		Long: `Preview a board layout in the terminal.

The board is laid out at the terminal width (one cell per 10px) and reflows
as the window is resized. Persisted heights for the board are applied.

Keys: ↑/↓ j/k pgup/pgdn scroll, +/- column width, r reload heights, q quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBoardFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := flags.options(cmd, c.Config.PipelineOptions())
			if err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			b, err := c.loadBoard(args[0])
			if err != nil {
				return fmt.Errorf("load board %s: %w", args[0], err)
			}

			runner, err := c.newRunner(ctx, flags.noCache, nil)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			heights, err := runner.LoadHeights(ctx, b.Name)
			if err != nil {
				return err
			}

			m := newPreviewModel(b, heights, opts)
			defer m.close()
			m.reload = func() tea.Msg {
				h, err := runner.LoadHeights(ctx, b.Name)
				if err != nil {
					return err
				}
				return heightsMsg(h)
			}

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// heightsMsg carries heights reloaded from the cache.
type heightsMsg map[masonry.Key]float64

// previewModel is the bubbletea model of the preview command. The engine
// starts unmeasured and is sized by the first WindowSizeMsg.
type previewModel struct {
	board  board.Board
	engine *masonry.Engine[board.Tile]
	reload tea.Cmd

	minWidth float64
	cols     int
	rows     int
	offset   int
	lines    []string
	err      error
}

func newPreviewModel(b board.Board, heights map[masonry.Key]float64, opts pipeline.Options) *previewModel {
	cfg := opts.EngineConfig()
	cfg.Width = 0

	m := &previewModel{board: b, minWidth: opts.ColumnWidth}
	m.engine = b.NewEngine(cfg, masonry.WithHeights[board.Tile](pipeline.MergeHeights(b, heights)))
	m.engine.OnChange(func(masonry.Layout) { m.redraw() })
	return m
}

func (m *previewModel) close() { m.engine.Close() }

// redraw renders the current layout to text lines.
func (m *previewModel) redraw() {
	if m.cols <= 0 {
		m.lines = nil
		return
	}
	l := board.NewLayout(m.board, m.engine.Snapshot())
	text := strings.TrimRight(string(sink.RenderText(l, sink.WithTextColumns(m.cols))), "\n")
	if text == "" {
		m.lines = nil
	} else {
		m.lines = strings.Split(text, "\n")
	}
	m.offset = min(m.offset, m.maxOffset())
}

func (m *previewModel) viewRows() int { return max(m.rows-previewChrome, 1) }

func (m *previewModel) maxOffset() int { return max(len(m.lines)-m.viewRows(), 0) }

func (m *previewModel) scroll(delta int) {
	m.offset = min(max(m.offset+delta, 0), m.maxOffset())
}

// setColumnWidth switches to auto columns with the given minimum width.
func (m *previewModel) setColumnWidth(w float64) {
	m.minWidth = max(w, columnWidthStep)
	m.engine.SetColumns(masonry.AutoColumns(m.minWidth))
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup":
			m.scroll(-m.viewRows())
		case "pgdown":
			m.scroll(m.viewRows())
		case "+", "=":
			m.setColumnWidth(m.minWidth + columnWidthStep)
		case "-":
			m.setColumnWidth(m.minWidth - columnWidthStep)
		case "r":
			return m, m.reload
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.engine.SetWidth(float64(msg.Width) * pixelsPerCell)
		// SetWidth skips unchanged widths; the canvas may still have changed.
		m.redraw()
	case heightsMsg:
		m.engine.RestoreHeights(pipeline.MergeHeights(m.board, msg))
	case error:
		m.err = msg
	}
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %d tiles · %d columns · %.0fpx",
		m.board.Name, len(m.board.Tiles), m.engine.ColumnCount(), m.engine.ContainerHeight())
	b.WriteString(previewHeaderStyle.Render(header))
	b.WriteString("\n")

	end := min(m.offset+m.viewRows(), len(m.lines))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.lines[i])
		b.WriteString("\n")
	}
	for i := end - m.offset; i < m.viewRows(); i++ {
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(previewFooterStyle.Render("↑/↓ scroll  +/- column width  r reload heights  q quit"))
	}
	return b.String()
}
