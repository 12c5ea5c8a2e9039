package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/netlogs/tui"
)

// LaunchTUI opens file in the viewer and blocks until the user quits.
func LaunchTUI(file string) error {
	model := tui.NewModel(tui.Options{
		FileName:  file,
		Settings:  Settings,
		Translate: translator(),
		Logger:    GetLogger(),
		NotifyHost: func(event, payload string) {
			GetLogger().Debug("host event", "event", event, "payload", payload)
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func translator() tui.Translator {
	if Translator == nil {
		return nil
	}
	return Translator.Translate
}
