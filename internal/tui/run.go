package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives m in the alternate screen until the user quits or ctx is
// cancelled. The sink is closed on return so late render calls never block.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	defer m.sink.Close()

	base := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	_, err := tea.NewProgram(m, append(base, opts...)...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
