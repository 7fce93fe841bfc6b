package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/pkg/pipeline"
	"github.com/matzehuels/gridtile/pkg/render"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		width, height, spacing int
		noCache                bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Show the resolved rows, columns and placements of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], pipeline.Options{
				Width:   width,
				Height:  height,
				Spacing: spacingFlag(cmd, spacing),
			}, noCache)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "container width (default: the scene's)")
	cmd.Flags().IntVar(&height, "height", 0, "container height (default: the scene's)")
	cmd.Flags().IntVar(&spacing, "spacing", 0, "spacing between rows and columns (default: the scene's)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	s, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)
	l, err := runner.Tile(ctx, s, opts)
	if err != nil {
		return err
	}

	printKeyValue("Scene", l.Scene)
	printKeyValue("Frame", fmt.Sprintf("%dx%d", l.Width, l.Height))
	printKeyValue("Spacing", strconv.Itoa(l.Spacing))
	printNewline()
	fmt.Fprintln(stdout, renderInspect(l))
	printRejections(l.Rejected)
	return nil
}

// renderInspect formats the lines and placements of a layout as tables.
func renderInspect(l render.Layout) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Columns"))
	b.WriteString("\n")
	b.WriteString(linesTable(l.Columns).Render())
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Rows"))
	b.WriteString("\n")
	b.WriteString(linesTable(l.Rows).Render())
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Placements"))
	b.WriteString("\n")
	b.WriteString(placementsTable(l.Placements).Render())
	return b.String()
}

func linesTable(lines []render.Line) *table.Table {
	rows := make([][]string, 0, len(lines))
	for _, ln := range lines {
		maxStr := "∞"
		if ln.Max > 0 {
			maxStr = strconv.Itoa(ln.Max)
		}
		rows = append(rows, []string{
			strconv.Itoa(ln.Index),
			strconv.Itoa(ln.Pos),
			strconv.Itoa(ln.Value),
			strconv.Itoa(ln.Min),
			maxStr,
			ln.Policy.String(),
			activeMark(ln.Active),
		})
	}

	return newTable().
		Headers("#", "Pos", "Size", "Min", "Max", "Policy", "Active").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row < len(lines) && !lines[row].Active {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
}

func placementsTable(placements []render.Placement) *table.Table {
	rows := make([][]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, []string{
			p.ID,
			p.Kind,
			fmt.Sprintf("%d,%d", p.Row, p.Col),
			fmt.Sprintf("%dx%d", p.LastRow-p.Row+1, p.LastCol-p.Col+1),
			fmt.Sprintf("%d,%d", p.X, p.Y),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			placementState(p),
		})
	}

	return newTable().
		Headers("ID", "Kind", "Cell", "Span", "Pos", "Size", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row < len(placements) && !placements[row].Drawn() {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim))
}

func activeMark(active bool) string {
	if active {
		return iconSuccess
	}
	return ""
}

func placementState(p render.Placement) string {
	switch {
	case p.Ignored:
		return "ignored"
	case p.Hidden:
		return "hidden"
	case p.Selected:
		return "selected"
	}
	return ""
}
