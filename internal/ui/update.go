package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/util"
)

// Update implements tea.Model. All state changes happen here; screen
// rendering stays purely a function of Model in View.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil
	case matchFinishedMsg:
		m.liveRunning = false
		if msg.err != nil {
			m.liveErr = msg.err
		} else {
			m.liveResult = &msg.result
		}
		m.screen = ScreenDone
		return m, nil
	case replayLoadedMsg:
		if msg.err != nil {
			m.repErr = msg.err
			return m, nil
		}
		m.rep = msg.rep
		m.repGame = msg.g
		m.repCursor = 0
		m.screen = ScreenReplay
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.screen != ScreenPlaySetup && m.screen != ScreenLiveMatch {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case ScreenMainMenu:
		return m.handleMainMenuKeys(msg)
	case ScreenPlaySetup:
		return m.handlePlaySetupKeys(msg)
	case ScreenLiveMatch:
		return m.handleLiveMatchKeys(msg)
	case ScreenReplay:
		return m.handleReplayKeys(msg)
	case ScreenDone:
		return m.handleDoneKeys(msg)
	}
	return m, nil
}

func (m Model) handleMainMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuSelection > 0 {
			m.menuSelection--
		} else {
			m.menuSelection = len(m.menuOptions) - 1
		}
	case "down", "j":
		if m.menuSelection < len(m.menuOptions)-1 {
			m.menuSelection++
		} else {
			m.menuSelection = 0
		}
	case "enter":
		switch m.menuSelection {
		case 0:
			m.screen = ScreenPlaySetup
			m.setupError = ""
			m.focusField = fieldGame
			return m.withFocusedInput()
		case 1:
			m.screen = ScreenReplay
			m.repErr = nil
			m.rep = nil
			return m, nil
		case 2:
			return m, tea.Quit
		}
	}
	return m, nil
}

// withFocusedInput refreshes textinput focus state to match m.focusField.
func (m Model) withFocusedInput() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for i := range m.inputs {
		if setupField(i) == m.focusField {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) handlePlaySetupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenMainMenu
		return m, nil
	case "tab", "down":
		m.focusField = (m.focusField + 1) % fieldCount
		return m.withFocusedInput()
	case "shift+tab", "up":
		m.focusField = (m.focusField - 1 + fieldCount) % fieldCount
		return m.withFocusedInput()
	case "enter":
		return m.launchMatch()
	}

	var cmd tea.Cmd
	m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
	return m, cmd
}

func (m Model) launchMatch() (tea.Model, tea.Cmd) {
	gameSpec := orDefault(m.inputs[fieldGame].Value(), "tictactoe")
	p0Spec := orDefault(m.inputs[fieldP0].Value(), "human")
	p1Spec := orDefault(m.inputs[fieldP1].Value(), "random")

	g, err := m.registry.LoadGame(gameSpec)
	if err != nil {
		m.setupError = err.Error()
		return m, nil
	}
	a0, err := m.registry.LoadAgent(p0Spec, g.Name())
	if err != nil {
		m.setupError = err.Error()
		return m, nil
	}
	a1, err := m.registry.LoadAgent(p1Spec, g.Name())
	if err != nil {
		_ = agent.Close(a0)
		m.setupError = err.Error()
		return m, nil
	}

	m.setupError = ""
	m.liveGame = g
	m.liveRunning = true
	m.liveResult = nil
	m.liveErr = nil
	m.screen = ScreenLiveMatch
	return m, runMatchCmd(g, a0, a1, m.opts.SaveLogPath)
}

func (m Model) handleLiveMatchKeys(tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m Model) handleReplayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.rep == nil {
		if msg.String() == "esc" {
			m.screen = ScreenMainMenu
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = ScreenMainMenu
		m.rep = nil
		m.repCursor = 0
	case "right", "l", "n":
		if m.repCursor < len(m.rep.States)-1 {
			m.repCursor++
		}
	case "left", "h", "p":
		if m.repCursor > 0 {
			m.repCursor--
		}
	case "g":
		m.repCursor = 0
	case "G":
		m.repCursor = len(m.rep.States) - 1
	case "c":
		rendered := fmt.Sprintf("%v", m.rep.States[m.repCursor])
		if m.repGame != nil {
			rendered = m.repGame.Render(m.rep.States[m.repCursor])
		}
		if err := util.CopyToClipboard(rendered); err != nil {
			m.clipboardMsg = err.Error()
		} else {
			m.clipboardMsg = "copied position to clipboard"
		}
	}
	return m, nil
}

func (m Model) handleDoneKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.screen = ScreenMainMenu
		m.liveResult = nil
		m.liveErr = nil
		m.clipboardMsg = ""
	case "c":
		if m.opts.SaveLogPath != "" {
			if err := util.CopyToClipboard(m.opts.SaveLogPath); err != nil {
				m.clipboardMsg = err.Error()
			} else {
				m.clipboardMsg = "copied log path to clipboard"
			}
		}
	}
	return m, nil
}
