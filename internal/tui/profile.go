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

type profileLoadedMsg struct {
	snap *quest.Snapshot
	err  error
}

type profileModel struct {
	deps      *Deps
	stats     *domain.Stats
	completed []domain.Quest
	friends   []domain.Friend
	loading   bool
	errText   string
	width     int
	height    int
}

func newProfileModel(deps *Deps) profileModel {
	return profileModel{deps: deps}
}

func (m profileModel) Init() tea.Cmd {
	return m.load()
}

func (m profileModel) load() tea.Cmd {
	ctrl := m.deps.Ctrl
	return func() tea.Msg {
		snap, err := ctrl.ProfileSnapshot(context.Background())
		return profileLoadedMsg{snap: snap, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.stats = msg.snap.Stats
		m.completed = msg.snap.Completed
		m.friends = msg.snap.Friends

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

// categoryTally counts completed quests per category, in catalog order.
func (m profileModel) categoryTally() ([]string, []int, int) {
	counts := map[string]int{}
	max := 0
	for _, q := range m.completed {
		counts[q.Category]++
		if counts[q.Category] > max {
			max = counts[q.Category]
		}
	}
	var names []string
	var vals []int
	for _, c := range domain.Categories {
		if counts[c] > 0 {
			names = append(names, c)
			vals = append(vals, counts[c])
		}
	}
	return names, vals, max
}

func (m profileModel) View() string {
	if m.loading && m.stats == nil {
		return "\n " + dimStyle.Render("loading...")
	}
	if m.errText != "" && m.stats == nil {
		return "\n " + errorStyle.Render(m.errText) + "\n " + dimStyle.Render("r to retry")
	}

	var b strings.Builder
	b.WriteString("\n")

	user := m.deps.Session.User()
	if user != nil {
		name := user.Username
		if user.Avatar != nil {
			name += "  " + metaStyle.Render("the "+user.Avatar.Name)
		}
		b.WriteString(" " + selectedStyle.Render(name) + "\n")
	}

	if s := m.stats; s != nil {
		b.WriteString(fmt.Sprintf(" %s   %s   %s\n\n",
			normalStyle.Render(fmt.Sprintf("level %d", s.Level)),
			goldStyle.Render(fmt.Sprintf("%d gold", s.Gold)),
			normalStyle.Render(fmt.Sprintf("%d quests completed", s.CompletedQuests))))

		if len(s.Badges) > 0 {
			b.WriteString(" " + accentStyle.Render("badges") + "  " + normalStyle.Render(strings.Join(s.Badges, ", ")) + "\n\n")
		}
	}

	names, vals, max := m.categoryTally()
	if len(names) > 0 {
		b.WriteString(" " + selectedStyle.Render("By category") + "\n")
		for i, name := range names {
			bar := renderBar(float64(vals[i])/float64(max), 16)
			b.WriteString(fmt.Sprintf(" %-14s %s %d\n",
				CategoryStyle(name).Render(name), CategoryStyle(name).Render(bar), vals[i]))
		}
		b.WriteString("\n")
	}

	if len(m.completed) > 0 {
		b.WriteString(" " + selectedStyle.Render("Recent victories") + "\n")
		recent := m.completed
		if len(recent) > 5 {
			recent = recent[:5]
		}
		for _, q := range recent {
			when := ""
			if q.CompletedAt != "" {
				when = "  " + metaStyle.Render(formatWhen(q.CompletedAt))
			}
			b.WriteString(" " + normalStyle.Render(truncStr(q.Title, 44)) +
				"  " + xpStyle.Render(fmt.Sprintf("+%d xp", q.XPReward)) + when + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(" " + selectedStyle.Render("Fellowship") + "\n")
	if len(m.friends) == 0 {
		b.WriteString(" " + dimStyle.Render("no companions yet, recruit one from the board (4)") + "\n")
	}
	for _, f := range m.friends {
		b.WriteString(fmt.Sprintf(" %s  %s\n",
			normalStyle.Render(f.Username),
			metaStyle.Render(fmt.Sprintf("lv %d · %d xp", f.Level, f.XP))))
	}

	return b.String()
}

func (m profileModel) helpKeys() string {
	return helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
