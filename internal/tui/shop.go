package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type shopLoadedMsg struct {
	items []domain.ShopItem
	err   error
}

// shopModel lists purchasable items gated on the gold balance carried
// by the session user.
type shopModel struct {
	deps    *Deps
	items   []domain.ShopItem
	cursor  int
	loading bool
	note    string
	errText string
	width   int
	height  int
}

func newShopModel(deps *Deps) shopModel {
	return shopModel{deps: deps}
}

func (m shopModel) Init() tea.Cmd {
	return m.load()
}

func (m shopModel) load() tea.Cmd {
	c := m.deps.Client
	return func() tea.Msg {
		items, err := c.ShopItems(context.Background())
		return shopLoadedMsg{items: items, err: err}
	}
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case shopLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m shopModel) handleKey(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	m.note = ""
	m.errText = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
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
	case "b", "enter":
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		switch err := m.deps.Ctrl.PurchaseItem(item); {
		case errors.Is(err, quest.ErrInsufficientGold):
			m.errText = "not enough gold"
		case err != nil:
			m.errText = client.Message(err)
		default:
			m.note = fmt.Sprintf("%s acquired", item.Name)
		}
	}
	return m, nil
}

func (m shopModel) View() string {
	if m.loading && len(m.items) == 0 {
		return "\n " + dimStyle.Render("loading...")
	}
	if m.errText != "" && len(m.items) == 0 {
		return "\n " + errorStyle.Render(m.errText) + "\n " + dimStyle.Render("r to retry")
	}

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("The merchant's stall") + "\n")
	if user := m.deps.Session.User(); user != nil {
		b.WriteString(" " + goldStyle.Render(fmt.Sprintf("%d gold", user.Gold)) + dimStyle.Render(" in your purse") + "\n")
	}
	b.WriteString("\n")

	gold := 0
	if user := m.deps.Session.User(); user != nil {
		gold = user.Gold
	}

	for i, item := range m.items {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		costStyle := goldStyle
		if item.Cost > gold {
			costStyle = metaStyle
		}
		b.WriteString(fmt.Sprintf(" %s %s  %s  %s\n",
			cursor,
			nameStyle.Render(item.Name),
			costStyle.Render(fmt.Sprintf("%d gold", item.Cost)),
			metaStyle.Render(item.ItemType)))
		if i == m.cursor {
			b.WriteString("   " + dimStyle.Render(truncStr(item.Description, 70)) + "\n")
		}
	}
	if len(m.items) == 0 {
		b.WriteString(" " + dimStyle.Render("the merchant has nothing today") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.errText != "":
		b.WriteString(" " + errorStyle.Render(m.errText))
	case m.note != "":
		b.WriteString(" " + successStyle.Render(m.note))
	}
	return b.String()
}

func (m shopModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("b", "buy") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
