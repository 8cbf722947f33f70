package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ja-ri/HabitQuest/internal/engine"
	"github.com/ja-ri/HabitQuest/internal/session"
	"github.com/ja-ri/HabitQuest/internal/ui"
)

// Banner lifetimes are cosmetic; progression state never depends on them.
const (
	levelUpBannerFor = 2 * time.Second
	streakBannerFor  = 2500 * time.Millisecond
)

type screen int

const (
	loginScreen screen = iota
	boardScreen
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	ticker *session.Ticker

	screen screen

	nameInput textinput.Model
	bar       progress.Model

	username string
	state    engine.State

	selected int
	lastLog  string
	loginErr string

	levelUpBanner string
	streakBanner  string

	width  int
	height int
}

type loggedInMsg struct {
	username string
	state    engine.State
	err      error
}

type rolledMsg struct {
	today engine.Date
}

type dismissLevelUpMsg struct{}

type dismissStreakMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service, ticker *session.Ticker, username string) boardModel {
	ti := textinput.New()
	ti.Placeholder = "Enter your name"
	ti.CharLimit = 64
	ti.Width = 28
	ti.Focus()

	return boardModel{
		ctx:       ctx,
		svc:       svc,
		ticker:    ticker,
		screen:    loginScreen,
		nameInput: ti,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		username:  strings.TrimSpace(username),
	}
}

func (m boardModel) Init() tea.Cmd {
	if m.username != "" {
		return m.loginCmd(m.username)
	}
	return textinput.Blink
}

func (m boardModel) loginCmd(name string) tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Login(m.ctx, name)
		if err != nil {
			return loggedInMsg{username: name, err: err}
		}
		// Presentation-driven rollover on entry: yesterday's checklist
		// must not show pre-checked.
		st, _ = m.svc.Rollover(strings.TrimSpace(name), st, engine.Today(time.Now()))
		return loggedInMsg{username: strings.TrimSpace(name), state: st}
	}
}

func (m boardModel) waitForDayChange() tea.Cmd {
	if m.ticker == nil {
		return nil
	}
	return func() tea.Msg {
		today, ok := <-m.ticker.Days()
		if !ok {
			return nil
		}
		return rolledMsg{today: today}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loggedInMsg:
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		m.screen = boardScreen
		m.username = msg.username
		m.state = msg.state
		m.loginErr = ""
		m.lastLog = fmt.Sprintf("Logged in as %s.", msg.username)
		return m, m.waitForDayChange()

	case rolledMsg:
		next, cleared := m.svc.Rollover(m.username, m.state, msg.today)
		m.state = next
		if cleared {
			m.lastLog = "A new day! Checklist reset."
		}
		return m, m.waitForDayChange()

	case dismissLevelUpMsg:
		m.levelUpBanner = ""
		return m, nil

	case dismissStreakMsg:
		m.streakBanner = ""
		return m, nil

	case tea.KeyMsg:
		if m.screen == loginScreen {
			return m.updateLogin(msg)
		}
		return m.updateBoard(msg)
	}

	if m.screen == loginScreen {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.loginErr = "Enter a name to start."
			return m, nil
		}
		m.loginErr = ""
		return m, m.loginCmd(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.svc.Catalog().Habits()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(habits)-1 {
			m.selected++
		}
		return m, nil
	case "enter", " ", "c":
		if m.selected < 0 || m.selected >= len(habits) {
			return m, nil
		}
		return m.complete(habits[m.selected])
	}
	return m, nil
}

// complete applies the transition inline: it is pure plus an async
// enqueue, so there is nothing to run off the update loop. That also
// keeps completions strictly sequential.
func (m boardModel) complete(habit engine.Habit) (tea.Model, tea.Cmd) {
	if m.state.IsCompleted(habit.ID) {
		m.lastLog = fmt.Sprintf("%s is already done today.", habit.Name)
		return m, nil
	}

	next, notes, err := m.svc.CompleteHabit(m.username, m.state, habit.ID, engine.Today(time.Now()))
	if err != nil {
		m.lastLog = err.Error()
		return m, nil
	}
	m.state = next
	m.lastLog = fmt.Sprintf("%s %s +%d XP", ui.IconDone, habit.Name, habit.XPValue)

	var cmds []tea.Cmd
	for _, n := range notes {
		switch n.Kind {
		case engine.NotificationLevelUp:
			m.levelUpBanner = n.Message
			cmds = append(cmds, tea.Tick(levelUpBannerFor, func(time.Time) tea.Msg {
				return dismissLevelUpMsg{}
			}))
		case engine.NotificationStreakBonus:
			m.streakBanner = n.Message
			cmds = append(cmds, tea.Tick(streakBannerFor, func(time.Time) tea.Msg {
				return dismissStreakMsg{}
			}))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m boardModel) View() string {
	if m.screen == loginScreen {
		return m.loginView()
	}
	return m.boardView()
}

func (m boardModel) loginView() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSparkle, "Habit Quest") + "\n\n")
	b.WriteString(m.nameInput.View() + "\n\n")
	if m.loginErr != "" {
		b.WriteString(ui.Bad.Render(ui.IconWarn+" "+m.loginErr) + "\n\n")
	}
	b.WriteString(ui.Muted.Render("enter start · esc quit") + "\n")
	return b.String()
}

func (m boardModel) boardView() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconSparkle, "Habit Quest") + "\n")
	b.WriteString(ui.LabelValue("User", m.username) + "\n\n")

	need := engine.XPRequiredForLevel(m.state.Level)
	b.WriteString(ui.LabelValue("Level", m.state.Level) + "\n")
	b.WriteString(ui.LabelValue("XP", fmt.Sprintf("%d / %d", m.state.XP, need)) + "\n")
	b.WriteString(m.bar.ViewAs(engine.ProgressPercent(m.state)) + "\n\n")

	b.WriteString(ui.StreakText(m.state.Streak) + "\n\n")

	for i, h := range m.svc.Catalog().Habits() {
		line := fmt.Sprintf("%s %s (+%d XP)", ui.CheckBox(m.state.IsCompleted(h.ID)), h.Name, h.XPValue)
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.levelUpBanner != "" {
		b.WriteString(ui.BannerLevelUp.Render(m.levelUpBanner) + "\n")
	}
	if m.streakBanner != "" {
		b.WriteString(ui.BannerStreak.Render(m.streakBanner) + "\n")
	}

	if m.lastLog != "" {
		b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	}
	b.WriteString(ui.Muted.Render("↑/↓ move · enter complete · q quit") + "\n")
	return b.String()
}
