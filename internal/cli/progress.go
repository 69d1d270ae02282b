package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	progressBarWidth = 40
	percentScale     = 100
)

// ProgressMsg reports how many frames have been encoded.
type ProgressMsg struct {
	Done  int64
	Total int64
}

// DoneMsg ends the progress display.
type DoneMsg struct {
	Err error
}

// ProgressModel is a single-file bubbletea progress display.
type ProgressModel struct {
	Label     string
	Done      int64
	Total     int64
	StartTime time.Time
	Finished  bool
	Cancelled bool
	Err       error
}

// NewProgressModel creates a model for one file.
func NewProgressModel(label string, total int64) ProgressModel {
	return ProgressModel{
		Label:     label,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Init initializes the model
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Cancelled = true
			return m, tea.Quit
		}

	case ProgressMsg:
		m.Done = msg.Done
		if msg.Total > 0 {
			m.Total = msg.Total
		}

	case DoneMsg:
		m.Finished = true
		m.Err = msg.Err
		if msg.Err == nil && m.Total > 0 {
			m.Done = m.Total
		}
		return m, tea.Quit
	}

	return m, nil
}

// Fraction returns progress in [0, 1].
func (m ProgressModel) Fraction() float64 {
	if m.Total <= 0 {
		return 0
	}
	return min(max(float64(m.Done)/float64(m.Total), 0), 1)
}

// View renders the model.
func (m ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Encoding " + m.Label))
	b.WriteString("\n")
	b.WriteString(RenderProgressBar(m.Fraction(), progressBarWidth))

	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(KeyStyle.Render(fmt.Sprintf("  %s", elapsed)))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderProgressBar renders a progress bar
func RenderProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * percentScale)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}
