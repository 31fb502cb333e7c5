package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type boardLoadedMsg struct {
	entries []domain.LeaderboardEntry
	err     error
}

type friendAddedMsg struct {
	username string
	err      error
}

// boardModel is the global XP leaderboard with inline friend recruiting.
type boardModel struct {
	deps    *Deps
	entries []domain.LeaderboardEntry
	cursor  int
	loading bool
	adding  bool
	note    string
	errText string
	width   int
	height  int
}

func newBoardModel(deps *Deps) boardModel {
	return boardModel{deps: deps}
}

func (m boardModel) Init() tea.Cmd {
	return m.load()
}

func (m boardModel) load() tea.Cmd {
	c := m.deps.Client
	return func() tea.Msg {
		entries, err := c.Leaderboard(context.Background())
		return boardLoadedMsg{entries: entries, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}

	case friendAddedMsg:
		m.adding = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.note = fmt.Sprintf("%s joined your fellowship", msg.username)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	m.note = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		if !m.loading {
			m.loading = true
			return m, m.load()
		}
	case "f":
		if m.adding || len(m.entries) == 0 {
			return m, nil
		}
		target := m.entries[m.cursor].Username
		if user := m.deps.Session.User(); user != nil && user.Username == target {
			m.errText = "that's you"
			return m, nil
		}
		m.adding = true
		c := m.deps.Client
		return m, func() tea.Msg {
			return friendAddedMsg{username: target, err: c.AddFriend(context.Background(), target)}
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading && len(m.entries) == 0 {
		return "\n " + dimStyle.Render("loading...")
	}
	if m.errText != "" && len(m.entries) == 0 {
		return "\n " + errorStyle.Render(m.errText) + "\n " + dimStyle.Render("r to retry")
	}

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Hall of heroes") + "\n\n")

	self := ""
	if user := m.deps.Session.User(); user != nil {
		self = user.Username
	}

	// Podium for the top three, then the full ranked list.
	if len(m.entries) >= 3 {
		b.WriteString(" " + m.podium() + "\n\n")
	}

	for i, e := range m.entries {
		rank := i + 1
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		line := fmt.Sprintf(" %s %s %s  %s",
			cursor,
			rankStyle(rank).Render(fmt.Sprintf("%2d.", rank)),
			nameStyle.Render(e.Username),
			metaStyle.Render(fmt.Sprintf("lv %d · %d xp", e.Level, e.XP)))
		if e.Username == self {
			line += "  " + accentStyle.Render("<- you")
		}
		b.WriteString(line + "\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(" " + dimStyle.Render("the hall stands empty") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.adding:
		b.WriteString(" " + dimStyle.Render("recruiting..."))
	case m.errText != "":
		b.WriteString(" " + errorStyle.Render(m.errText))
	case m.note != "":
		b.WriteString(" " + successStyle.Render(m.note))
	}
	return b.String()
}

// podium renders the top three as silver, gold, bronze columns with
// the champion in the middle, tallest.
func (m boardModel) podium() string {
	second := rankStyle(2).Render("2 " + m.entries[1].Username)
	first := rankStyle(1).Render("♛ 1 " + m.entries[0].Username)
	third := rankStyle(3).Render("3 " + m.entries[2].Username)
	return second + "   " + first + "   " + third
}

func (m boardModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("f", "add friend") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
