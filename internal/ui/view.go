package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.TitleText).Padding(1, 0)
}

func (m Model) menuItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.MenuNormal).Padding(0, 2)
}

func (m Model) selectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.MenuSelected).Bold(true).Padding(0, 2)
}

func (m Model) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.HelpText).Padding(1, 0)
}

func (m Model) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.ErrorText).Bold(true)
}

func (m Model) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.StatusText)
}

func (m Model) boardStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.BoardBorder).
		Border(lipgloss.RoundedBorder()).Padding(1, 2)
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case ScreenMainMenu:
		return m.viewMainMenu()
	case ScreenPlaySetup:
		return m.viewPlaySetup()
	case ScreenLiveMatch:
		return m.viewLiveMatch()
	case ScreenReplay:
		return m.viewReplay()
	case ScreenDone:
		return m.viewDone()
	}
	return ""
}

func (m Model) viewMainMenu() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("ai-arena"))
	b.WriteString("\n\n")
	for i, opt := range m.menuOptions {
		if i == m.menuSelection {
			b.WriteString(m.selectedItemStyle().Render("> " + opt))
		} else {
			b.WriteString(m.menuItemStyle().Render("  " + opt))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.helpStyle().Render("\nup/down: move  enter: select  q: quit"))
	return b.String()
}

func (m Model) viewPlaySetup() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("play a match"))
	b.WriteString("\n\n")

	labels := []string{"game", "agent 0", "agent 1"}
	for i, label := range labels {
		style := m.menuItemStyle()
		if setupField(i) == m.focusField {
			style = m.selectedItemStyle()
		}
		b.WriteString(style.Render(fmt.Sprintf("%-8s %s", label, m.inputs[i].View())))
		b.WriteString("\n")
	}

	if m.setupError != "" {
		b.WriteString("\n")
		b.WriteString(m.errorStyle().Render(m.setupError))
		b.WriteString("\n")
	}

	b.WriteString(m.helpStyle().Render("\ntab: next field  enter: start match  esc: back"))
	return b.String()
}

func (m Model) viewLiveMatch() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("match in progress"))
	b.WriteString("\n\n")
	if m.liveGame != nil {
		b.WriteString(m.statusStyle().Render(m.liveGame.Name()))
		b.WriteString("\n")
	}
	if m.liveRunning {
		b.WriteString(m.statusStyle().Render("playing..."))
	}
	return b.String()
}

func (m Model) viewReplay() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("replay"))
	b.WriteString("\n\n")

	if m.repErr != nil {
		b.WriteString(m.errorStyle().Render(m.repErr.Error()))
		b.WriteString(m.helpStyle().Render("\nesc: back"))
		return b.String()
	}
	if m.rep == nil {
		b.WriteString(m.helpStyle().Render("no replay loaded\nesc: back"))
		return b.String()
	}

	state := m.rep.States[m.repCursor]
	rendered := fmt.Sprintf("%v", state)
	if m.repGame != nil {
		rendered = m.repGame.Render(state)
	}
	b.WriteString(m.boardStyle().Render(rendered))
	b.WriteString("\n")
	b.WriteString(m.statusStyle().Render(fmt.Sprintf("move %d/%d", m.repCursor, len(m.rep.States)-1)))

	if m.repCursor == len(m.rep.States)-1 && m.rep.Terminal.IsTerminal {
		winner := "draw"
		if m.rep.Terminal.Winner != nil {
			winner = fmt.Sprintf("player %d", *m.rep.Terminal.Winner)
		}
		b.WriteString("\n")
		b.WriteString(m.statusStyle().Render(fmt.Sprintf("winner: %s  reason: %s", winner, m.rep.Terminal.Reason)))
	}

	if m.clipboardMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.statusStyle().Render(m.clipboardMsg))
	}

	b.WriteString(m.helpStyle().Render("\nleft/right: step  g/G: start/end  c: copy position  esc: back"))
	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("match finished"))
	b.WriteString("\n\n")

	if m.liveErr != nil {
		b.WriteString(m.errorStyle().Render(m.liveErr.Error()))
	} else if m.liveResult != nil {
		winner := "draw"
		if m.liveResult.Winner != nil {
			winner = fmt.Sprintf("player %d", *m.liveResult.Winner)
		}
		b.WriteString(m.statusStyle().Render(fmt.Sprintf("winner: %s  reason: %s  turns: %d",
			winner, m.liveResult.Reason, m.liveResult.Turns)))
	}

	if m.clipboardMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.statusStyle().Render(m.clipboardMsg))
	}
	if m.opts.SaveLogPath != "" {
		b.WriteString(m.helpStyle().Render("\nenter: back to menu  c: copy log path"))
	} else {
		b.WriteString(m.helpStyle().Render("\nenter: back to menu"))
	}
	return b.String()
}
