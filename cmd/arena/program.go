package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenahq/ai-arena/internal/config"
	"github.com/arenahq/ai-arena/internal/ui"
)

type guiOptions struct {
	gameSpec string
	p0Spec   string
	p1Spec   string
	loadLog  string
	saveLog  string
}

func runGUI(opts guiOptions) error {
	display := config.LoadDisplay()
	model := ui.NewModel(ui.Options{
		Registry:    newBuiltinRegistry(),
		Config:      display,
		GameSpec:    opts.gameSpec,
		P0Spec:      opts.p0Spec,
		P1Spec:      opts.p1Spec,
		LoadLogPath: opts.loadLog,
		SaveLogPath: opts.saveLog,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
