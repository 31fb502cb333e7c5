package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type authField int

const (
	fieldEmail authField = iota
	fieldPassword
	fieldUsername
	numAuthFields
)

// authResultMsg carries the outcome of a login/register attempt. The
// session store has already been updated when err is nil.
type authResultMsg struct {
	user *domain.User
	err  error
}

type authModel struct {
	deps       *Deps
	register   bool
	fields     [numAuthFields]string
	focus      authField
	submitting bool
	errText    string
	width      int
	height     int
}

func newAuthModel(deps *Deps) authModel {
	return authModel{deps: deps}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) visibleFields() authField {
	if m.register {
		return numAuthFields
	}
	return fieldUsername // login shows email + password only
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		user := msg.user
		return m, func() tea.Msg { return authSuccessMsg{user: user} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m authModel) handleKey(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errText = ""

	n := m.visibleFields()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t":
		m.register = !m.register
		m.focus = fieldEmail
	case "tab", "down":
		m.focus = (m.focus + 1) % n
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + n) % n
	case "enter":
		if m.focus == n-1 {
			return m.submit()
		}
		m.focus++
	case "ctrl+s":
		return m.submit()
	default:
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	username := strings.TrimSpace(m.fields[fieldUsername])

	if email == "" || password == "" {
		m.errText = "email and password are required"
		return m, nil
	}
	if m.register && username == "" {
		m.errText = "username is required"
		return m, nil
	}

	m.submitting = true
	deps := m.deps
	register := m.register
	return m, func() tea.Msg {
		var auth *client.AuthResponse
		var err error
		if register {
			auth, err = deps.Client.Register(context.Background(), email, password, username)
		} else {
			auth, err = deps.Client.Login(context.Background(), email, password)
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		user := auth.User
		if err := deps.Session.Login(auth.Token, &user); err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{user: &user}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	if m.register {
		b.WriteString(" " + selectedStyle.Render("Create your hero") + "\n")
		b.WriteString(" " + dimStyle.Render("ctrl+t to sign in instead") + "\n\n")
	} else {
		b.WriteString(" " + selectedStyle.Render("Welcome back, adventurer") + "\n")
		b.WriteString(" " + dimStyle.Render("ctrl+t to create an account") + "\n\n")
	}

	labels := [numAuthFields]string{"email", "password", "username"}
	for i := authField(0); i < m.visibleFields(); i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == fieldPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		if i == m.focus {
			value += "█"
		}
		b.WriteString(" " + cursor + " " + style.Render(labels[i]) + ": " + value + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in..."))
	} else if m.errText != "" {
		b.WriteString(" " + errorStyle.Render(m.errText))
	}

	return b.String()
}

func (m authModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+t", "mode") + "  " + helpEntry("ctrl+c", "quit")
}
