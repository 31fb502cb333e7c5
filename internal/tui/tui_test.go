package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/internal/session"
	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

// newTestDeps builds deps against an unreachable API; tests drive the
// models with messages directly and never hit the network.
func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	c := client.New("http://127.0.0.1:1", "")
	store := session.NewStore(c, filepath.Join(t.TempDir(), "token"), nil)
	return &Deps{
		Client:  c,
		Session: store,
		Ctrl:    quest.NewController(c, store, nil),
		Log:     zap.NewNop(),
	}
}

func authedDeps(t *testing.T, user *domain.User) *Deps {
	t.Helper()
	deps := newTestDeps(t)
	if err := deps.Session.Login("test-token", user); err != nil {
		t.Fatalf("session login: %v", err)
	}
	return deps
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyLeft() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyLeft} }
func keyRight() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRight} }
func keyCtrlS() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlS} }

var errTest = errors.New("boom")
