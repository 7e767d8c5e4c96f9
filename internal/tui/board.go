package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/engine"
)

// RunBoard opens the today board for an already started session.
func RunBoard(ctx context.Context, sess *engine.Session, out io.Writer) error {
	m := newBoardModel(ctx, sess)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
