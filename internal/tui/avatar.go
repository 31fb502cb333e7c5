package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/internal/browser"
	"github.com/emberforge/lifequest/pkg/domain"
)

// avatarModel is the one-time hero selection screen, shown until the
// user record carries an avatar.
type avatarModel struct {
	deps       *Deps
	cursor     int
	submitting bool
	width      int
	height     int
}

func newAvatarModel(deps *Deps) avatarModel {
	return avatarModel{deps: deps}
}

func (m avatarModel) Init() tea.Cmd {
	return nil
}

func (m avatarModel) Update(msg tea.Msg) (avatarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case avatarChosenMsg:
		m.submitting = false

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(domain.AvatarOptions)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "o":
			// Preview the portrait in the browser; best effort.
			browser.Open(domain.AvatarOptions[m.cursor].Image) //nolint:errcheck
		case "enter":
			m.submitting = true
			avatar := domain.AvatarOptions[m.cursor]
			ctrl := m.deps.Ctrl
			return m, func() tea.Msg {
				return avatarChosenMsg{err: ctrl.ChooseAvatar(context.Background(), avatar)}
			}
		}
	}
	return m, nil
}

func (m avatarModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Choose your hero") + "\n")
	b.WriteString(" " + dimStyle.Render("this choice is permanent") + "\n\n")

	for i, a := range domain.AvatarOptions {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		b.WriteString(" " + cursor + " " + nameStyle.Render(a.Name) + "  " + metaStyle.Render(a.Class) + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("creating your hero..."))
	}
	return b.String()
}

func (m avatarModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("o", "preview") + "  " + helpEntry("enter", "begin adventure") + "  " + helpEntry("q", "quit")
}
