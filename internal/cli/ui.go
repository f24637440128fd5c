package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

// ANSI 256 palette shared by the print helpers and the demo status bar.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
	colorBar    = lipgloss.Color("236")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// Exported styles are shared with the demo view.
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)

	// styleStatusBar is the bottom line of the demo.
	styleStatusBar = lipgloss.NewStyle().Foreground(colorText).Background(colorBar)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file under a success line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the node and connection counts of a frame and whether
// it came from the cache.
func printStats(nodeCount, connCount int, cached bool) {
	fmt.Println(statsLine(nodeCount, connCount, cached))
}

func statsLine(nodeCount, connCount int, cached bool) string {
	var parts []string
	parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	if connCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d connections", connCount)))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
