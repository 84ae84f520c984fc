package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gutterStyle  = lipgloss.NewStyle().Faint(true)
	pointerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// PrintError renders a parse error against its source: the offending line
// (and the one before it, when there is one) with line numbers, and a
// pointer at the failing column. line and col are 1-based. When the excerpt
// can't be cut from the source, it falls back to a one-line form.
func PrintError(w io.Writer, sourceID, source, message string, line, col int) {
	if !printExcerpt(w, sourceID, source, message, line, col) {
		fmt.Fprintf(w, "[%s @ line %d, column %d] %s\n", sourceID, line, col, message)
	}
}

func printExcerpt(w io.Writer, sourceID, source, message string, line, col int) bool {
	lines := splitLines(source)
	if line < 1 || line > len(lines) || col < 1 {
		return false
	}

	fmt.Fprintf(w, "%s:\n", sourceID)
	if line >= 2 {
		fmt.Fprintf(w, "%s %s\n", gutterStyle.Render(fmt.Sprintf("%5d│", line-1)), lines[line-2])
	}
	fmt.Fprintf(w, "%s %s\n", gutterStyle.Render(fmt.Sprintf("%5d│", line)), lines[line-1])

	// 5 digits + "│ " puts the text at column 7; the pointer lands one short
	// of the failing column so the arrow head touches it.
	pad := strings.Repeat(" ", 5+2+col-1)
	fmt.Fprintf(w, "%s%s\n", pad, pointerStyle.Render("╰─► "+message))
	return true
}

func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
