package tui

import (
	"strings"
	"testing"

	"github.com/emberforge/lifequest/pkg/domain"
)

func newTestBoard(t *testing.T) boardModel {
	m := newBoardModel(authedDeps(t, &domain.User{Username: "itsme", Level: 2}))
	m.width = 80
	m.height = 30
	return m
}

func boardEntries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{Username: "topdog", Level: 9, XP: 900},
		{Username: "itsme", Level: 2, XP: 120},
		{Username: "rookie", Level: 1, XP: 10},
	}
}

func TestBoardRendersEntries(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})

	view := m.View()
	for _, want := range []string{"topdog", "itsme", "rookie", "lv 9"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in board view, got:\n%s", want, view)
		}
	}
}

func TestBoardHighlightsSelf(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})

	if !strings.Contains(m.View(), "<- you") {
		t.Errorf("expected '<- you' marker, got:\n%s", m.View())
	}
}

func TestBoardPodiumForTopThree(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})

	if !strings.Contains(m.View(), "♛ 1 topdog") {
		t.Errorf("expected champion on the podium, got:\n%s", m.View())
	}
}

func TestBoardNoPodiumUnderThree(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()[:2]})

	if strings.Contains(m.View(), "♛") {
		t.Errorf("podium needs three entries, got:\n%s", m.View())
	}
}

func TestBoardEmptyState(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: nil})
	if !strings.Contains(m.View(), "the hall stands empty") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestBoardAddFriendCommand(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})

	m, cmd := m.Update(keyRunes("f"))
	if cmd == nil {
		t.Fatal("expected add-friend command on 'f'")
	}
	if !m.adding {
		t.Error("expected adding flag while request is in flight")
	}
}

func TestBoardAddSelfRefused(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})
	m, _ = m.Update(keyRunes("j")) // move onto "itsme"

	m, cmd := m.Update(keyRunes("f"))
	if cmd != nil {
		t.Error("adding yourself should not produce a command")
	}
	if !strings.Contains(m.View(), "that's you") {
		t.Errorf("expected self-add refusal, got:\n%s", m.View())
	}
}

func TestBoardFriendAddedNote(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})
	m.adding = true

	m, _ = m.Update(friendAddedMsg{username: "topdog"})
	if m.adding {
		t.Error("adding flag should clear")
	}
	if !strings.Contains(m.View(), "topdog joined your fellowship") {
		t.Errorf("expected success note, got:\n%s", m.View())
	}
}

func TestBoardFriendAddErrorShown(t *testing.T) {
	m := newTestBoard(t)
	m, _ = m.Update(boardLoadedMsg{entries: boardEntries()})
	m, _ = m.Update(friendAddedMsg{username: "topdog", err: errTest})

	if !strings.Contains(m.View(), "boom") {
		t.Errorf("expected error text, got:\n%s", m.View())
	}
}
