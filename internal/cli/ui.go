package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridtile/pkg/scene"
)

// stdout receives all user-facing output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for section headings and scene names.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for sizes and counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for rejected widgets.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printRejections lists the widgets a grid refused to place, one per line.
func printRejections(rejected []scene.Rejection) {
	for _, r := range rejected {
		printWarning("%s not placed (%s): %s", r.ID, r.Code, r.Message)
	}
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine summarizes a tiling run, e.g. "5 placed · 1 rejected · cached".
func statsLine(placed, rejected int, cached bool) string {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d placed", placed))}
	if rejected > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d rejected", rejected)))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(placed, rejected int, cached bool) {
	fmt.Fprintln(stdout, statsLine(placed, rejected, cached))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
