package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/session"
)

// RunBoard starts the interactive board. With an empty username it opens
// on the login prompt.
func RunBoard(ctx context.Context, svc *engine.Service, ticker *session.Ticker, username string, out io.Writer) error {
	m := newBoardModel(ctx, svc, ticker, username)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
