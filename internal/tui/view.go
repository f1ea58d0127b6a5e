package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpText = "↑/↓ move  enter reveal  ←/→ page  g goto  a all  c category  / search  d delete  x export  r refresh  q quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Trivia  " + m.heading()))
	if m.state.Loading {
		b.WriteString(faintStyle.Render("  loading..."))
	}
	b.WriteString("\n")
	b.WriteString(m.categoryBar())
	b.WriteString("\n\n")

	if len(m.state.Questions) == 0 && !m.state.Loading {
		b.WriteString(faintStyle.Render("No questions."))
		b.WriteString("\n")
	}
	for i, q := range m.state.Questions {
		label, _ := m.dir.Label(q.Category)
		line := fmt.Sprintf("%s  (%s, difficulty %d)", q.Question, label, q.Difficulty)
		if icon := m.dir.IconKey(q.Category); icon != "" {
			line = fmt.Sprintf("[%s] %s", icon, line)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		if m.state.IsRevealed(q.ID) {
			b.WriteString("    Answer: " + q.Answer + "\n")
		}
	}

	b.WriteString("\n")
	if pager := m.pager(); pager != "" {
		b.WriteString(pager)
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d questions", m.state.TotalQuestions)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	switch {
	case m.confirming:
		b.WriteString(modalStyle.Render(browser.DeletePrompt + " (y/n)"))
		b.WriteString("\n")
	case m.input != inputNone:
		b.WriteString(m.input.prompt() + m.buffer + "█\n")
	default:
		b.WriteString(faintStyle.Render(helpText))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) heading() string {
	switch m.state.Mode {
	case browser.ModeByCategory:
		label, ok := m.dir.Label(m.state.CategoryID)
		if !ok {
			label = fmt.Sprintf("#%d", m.state.CategoryID)
		}
		return "category: " + label
	case browser.ModeBySearch:
		return fmt.Sprintf("search: %q", m.state.SearchTerm)
	default:
		return fmt.Sprintf("all questions, page %d", m.state.Page)
	}
}

func (m Model) categoryBar() string {
	if m.dir.Len() == 0 {
		return faintStyle.Render("categories unavailable")
	}
	current, hasCurrent := m.state.Category()
	parts := make([]string, 0, m.dir.Len())
	for _, c := range m.dir.Entries() {
		part := fmt.Sprintf("%d %s", c.ID, c.Type)
		if hasCurrent && c.ID == current {
			part = titleStyle.Render("*" + part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

// pager lists page links; it is empty outside ALL mode
func (m Model) pager() string {
	links := browser.PageLinks(m.state)
	if len(links) == 0 {
		return ""
	}
	parts := make([]string, len(links))
	for i, page := range links {
		if page == m.state.Page {
			parts[i] = fmt.Sprintf("[%d]", page)
		} else {
			parts[i] = fmt.Sprint(page)
		}
	}
	return "pages: " + strings.Join(parts, " ")
}
