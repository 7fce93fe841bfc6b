package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/pkg/pipeline"
	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/render/sink"
	"github.com/matzehuels/gridtile/pkg/scene"
)

// Resize steps for the arrow keys, plain and with shift.
const (
	resizeStep      = 10
	resizeStepLarge = 50
)

// animateInterval is the delay between two animation frames.
const animateInterval = 150 * time.Millisecond

// watchChrome is the number of terminal rows the title and help take.
const watchChrome = 4

// tickMsg advances the width animation by one frame.
type tickMsg time.Time

var watchHelpStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// WatchModel - Interactive resizing
// =============================================================================

// WatchModel is the bubbletea model that re-tiles a scene whenever the
// container is resized with the arrow keys.
type WatchModel struct {
	Instance *scene.Instance
	Layout   render.Layout
	Width    int
	Height   int
	Retiles  int

	// Fit follows the terminal size instead of the scene size.
	Fit bool

	// Animate sweeps the width between half and all of MaxWidth.
	Animate  bool
	MaxWidth int
	step     int
}

// NewWatchModel tiles in at its current size.
func NewWatchModel(in *scene.Instance) WatchModel {
	size := in.Grid.Size()
	m := WatchModel{
		Instance: in,
		Width:    size.Width,
		Height:   size.Height,
		MaxWidth: size.Width,
		step:     -resizeStep,
	}
	return m.retile()
}

func tick() tea.Cmd {
	return tea.Tick(animateInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WatchModel) Init() tea.Cmd {
	if m.Animate {
		return tick()
	}
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if !m.Fit {
			return m, nil
		}
		m.Width = msg.Width * sink.DefaultCellWidth
		m.Height = max(msg.Height-watchChrome, 1) * sink.DefaultCellHeight
		m.MaxWidth = m.Width
		return m.retile(), nil
	case tickMsg:
		if !m.Animate {
			return m, nil
		}
		if m.Width+m.step < m.MaxWidth/2 || m.Width+m.step > m.MaxWidth {
			m.step = -m.step
		}
		m.Width = max(m.Width+m.step, 0)
		return m.retile(), tick()
	}
	return m, nil
}

func (m WatchModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {

	dw, dh := 0, 0
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.Animate = !m.Animate
		if m.Animate {
			return m, tick()
		}
		return m, nil
	case "left", "h":
		dw = -resizeStep
	case "right", "l":
		dw = resizeStep
	case "up", "k":
		dh = -resizeStep
	case "down", "j":
		dh = resizeStep
	case "shift+left":
		dw = -resizeStepLarge
	case "shift+right":
		dw = resizeStepLarge
	case "shift+up":
		dh = -resizeStepLarge
	case "shift+down":
		dh = resizeStepLarge
	default:
		return m, nil
	}

	m.Width = min(max(m.Width+dw, 0), pipeline.MaxSize)
	m.Height = min(max(m.Height+dh, 0), pipeline.MaxSize)
	m.MaxWidth = max(m.MaxWidth, m.Width)
	return m.retile(), nil
}

// retile applies the model's size to the grid and takes a new snapshot.
// The grid only re-tiles when the size actually changed.
func (m WatchModel) retile() WatchModel {
	g := m.Instance.Grid
	g.SetSize(m.Width, m.Height)
	if g.Tile() {
		m.Retiles++
	}
	m.Layout = render.Snapshot(m.Instance)
	return m
}

func (m WatchModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Layout.Scene))
	b.WriteString(" ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%dx%d", m.Width, m.Height)))
	b.WriteString("\n\n")
	b.Write(sink.RenderText(m.Layout))
	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render("←/→ width  ↑/↓ height  shift for larger steps  space animate  q quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		width, height, spacing int
		fit, animate           bool
	)

	cmd := &cobra.Command{
		Use:   "watch [scene]",
		Short: "Resize a scene interactively and watch it re-tile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], pipeline.Options{
				Width:   width,
				Height:  height,
				Spacing: spacingFlag(cmd, spacing),
			}, fit, animate)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "initial container width (default: the scene's)")
	cmd.Flags().IntVar(&height, "height", 0, "initial container height (default: the scene's)")
	cmd.Flags().IntVar(&spacing, "spacing", 0, "spacing between rows and columns (default: the scene's)")
	cmd.Flags().BoolVar(&fit, "fit", false, "size the container to the terminal")
	cmd.Flags().BoolVar(&animate, "animate", false, "sweep the width back and forth")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, fit, animate bool) error {
	s, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)
	in, err := pipeline.Build(s, opts)
	if err != nil {
		return err
	}

	m := NewWatchModel(in)
	m.Fit, m.Animate = fit, animate

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
