// Package cli holds the terminal presentation shared by the command-line tools.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E86C1")
	errorColor   = lipgloss.Color("#C0392B")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// Field is one line of a key/value summary.
type Field struct {
	Key   string
	Value string
}

// PrintVersion prints the tool name and version.
func PrintVersion(name, version string) {
	fmt.Println(TitleStyle.Render(name))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// RenderSummary formats a title followed by aligned key/value lines.
func RenderSummary(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Key))
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		key := f.Key + ":" + strings.Repeat(" ", width-lipgloss.Width(f.Key))
		sb.WriteString("  ")
		sb.WriteString(KeyStyle.Render(key))
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render(f.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintSummary writes RenderSummary to w.
func PrintSummary(w io.Writer, title string, fields []Field) {
	fmt.Fprint(w, RenderSummary(title, fields))
}
