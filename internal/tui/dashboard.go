package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

// dashboardQuestLimit caps how many active quests the dashboard shows.
// The full list lives on the quest board.
const dashboardQuestLimit = 5

type dashboardLoadedMsg struct {
	snap *quest.Snapshot
	err  error
}

type dashboardModel struct {
	deps       *Deps
	stats      *domain.Stats
	active     []domain.Quest
	cursor     int
	loading    bool
	completing bool
	errText    string
	width      int
	height     int
}

func newDashboardModel(deps *Deps) dashboardModel {
	return dashboardModel{deps: deps}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	ctrl := m.deps.Ctrl
	return func() tea.Msg {
		snap, err := ctrl.DashboardSnapshot(context.Background())
		return dashboardLoadedMsg{snap: snap, err: err}
	}
}

func (m dashboardModel) visible() []domain.Quest {
	if len(m.active) > dashboardQuestLimit {
		return m.active[:dashboardQuestLimit]
	}
	return m.active
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.stats = msg.snap.Stats
		m.active = msg.snap.Active
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}

	case completionMsg:
		m.completing = false
		if msg.err == nil && msg.result.Stats != nil {
			m.stats = msg.result.Stats
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	quests := m.visible()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(quests)-1 {
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
	case "c", "enter":
		if m.completing || len(quests) == 0 {
			return m, nil
		}
		m.completing = true
		q := quests[m.cursor]
		ctrl := m.deps.Ctrl
		return m, func() tea.Msg {
			result, err := ctrl.CompleteQuest(context.Background(), q.ID)
			return completionMsg{questID: q.ID, result: result, err: err}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.loading && m.stats == nil {
		return "\n " + dimStyle.Render("loading...")
	}
	if m.errText != "" && m.stats == nil {
		return "\n " + errorStyle.Render(m.errText) + "\n " + dimStyle.Render("r to retry")
	}

	if s := m.stats; s != nil {
		barWidth := 24
		b.WriteString(fmt.Sprintf(" %s  %s\n",
			selectedStyle.Render(fmt.Sprintf("Level %d", s.Level)),
			metaStyle.Render(fmt.Sprintf("%d / %d XP", s.XP, s.XP+s.XPToNextLevel))))
		b.WriteString(" " + xpStyle.Render(renderBar(s.XPPercent(), barWidth)) + "\n")

		hpPercent := 0.0
		if s.MaxHP > 0 {
			hpPercent = float64(s.HP) / float64(s.MaxHP)
		}
		b.WriteString(" " + hpStyle.Render(renderBar(hpPercent, barWidth)) +
			"  " + metaStyle.Render(fmt.Sprintf("%d / %d HP", s.HP, s.MaxHP)) + "\n\n")

		line := " " + goldStyle.Render(fmt.Sprintf("%d gold", s.Gold)) +
			metaStyle.Render("  ·  ") +
			normalStyle.Render(fmt.Sprintf("%d done", s.CompletedQuests)) +
			metaStyle.Render("  ·  ") +
			normalStyle.Render(fmt.Sprintf("%d active", s.ActiveQuests))
		if s.Streak > 0 {
			line += metaStyle.Render("  ·  ") + streakStyle.Render(fmt.Sprintf("%d day streak", s.Streak))
		}
		b.WriteString(line + "\n")

		if len(s.Badges) > 0 {
			b.WriteString(" " + accentStyle.Render("badges") + " " + normalStyle.Render(strings.Join(s.Badges, ", ")) + "\n")
		}
		b.WriteString("\n")
	}

	quests := m.visible()
	b.WriteString(" " + selectedStyle.Render("Active quests") + "\n")
	if len(quests) == 0 {
		b.WriteString(" " + dimStyle.Render("no active quests, visit the quest board (2)") + "\n")
	}
	for i, q := range quests {
		cursor := " "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			titleStyle = selectedStyle
		}
		b.WriteString(fmt.Sprintf(" %s %s  %s %s  %s\n",
			cursor,
			titleStyle.Render(truncStr(q.Title, 40)),
			DifficultyStyle(q.Difficulty).Render(q.Difficulty),
			CategoryStyle(q.Category).Render(q.Category),
			metaStyle.Render(fmt.Sprintf("+%d xp +%d gold", q.XPReward, q.GoldReward))))
	}
	if len(m.active) > dashboardQuestLimit {
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("and %d more on the quest board", len(m.active)-dashboardQuestLimit)) + "\n")
	}

	if m.completing {
		b.WriteString("\n " + dimStyle.Render("completing..."))
	} else if m.errText != "" {
		b.WriteString("\n " + errorStyle.Render(m.errText))
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("c", "complete") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
