package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
)

// Run は画面を起動し、終了するまでブロックします。
func Run(orch *directory.Orchestrator, nav *Navigator, opts Options) error {
	p := tea.NewProgram(New(orch, opts), tea.WithAltScreen())
	nav.Attach(p)
	defer nav.Attach(nil)

	_, err := p.Run()
	return err
}
