package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/internal/quest"
	"github.com/emberforge/lifequest/internal/session"
	"github.com/emberforge/lifequest/pkg/domain"
)

func newTestApp(deps *Deps) App {
	a := NewApp(deps, "test")
	a.width = 80
	a.height = 30
	return a
}

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	next, ok := model.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", model)
	}
	return next, cmd
}

func TestAnonymousSessionRoutesToAuth(t *testing.T) {
	a := newTestApp(newTestDeps(t))
	a, _ = updateApp(t, a, sessionInitMsg{status: session.StatusAnonymous})
	if a.view != viewAuth {
		t.Errorf("view = %v, want auth", a.view)
	}
}

func TestAuthenticatedWithoutAvatarRoutesToAvatar(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero"})
	a := newTestApp(deps)
	a, _ = updateApp(t, a, sessionInitMsg{status: session.StatusAuthenticated})
	if a.view != viewAvatar {
		t.Errorf("view = %v, want avatar selection until an avatar exists", a.view)
	}
}

func TestAuthenticatedWithAvatarRoutesToDashboard(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Class: "mage", Name: "Mage"}})
	a := newTestApp(deps)
	a, cmd := updateApp(t, a, sessionInitMsg{status: session.StatusAuthenticated})
	if a.view != viewDashboard {
		t.Errorf("view = %v, want dashboard", a.view)
	}
	if cmd == nil {
		t.Error("expected dashboard load command")
	}
}

func TestAvatarChosenEntersDashboard(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero"})
	a := newTestApp(deps)
	a.view = viewAvatar

	a, cmd := updateApp(t, a, avatarChosenMsg{})
	if a.view != viewDashboard {
		t.Errorf("view = %v, want dashboard after avatar choice", a.view)
	}
	if cmd == nil {
		t.Error("expected batched load + flash commands")
	}
}

func TestAvatarChosenErrorStays(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero"})
	a := newTestApp(deps)
	a.view = viewAvatar

	a, _ = updateApp(t, a, avatarChosenMsg{err: errTest})
	if a.view != viewAvatar {
		t.Errorf("view = %v, want to stay on avatar selection after failure", a.view)
	}
}

func TestAvatarChosenErrorKeepsScreenResponsive(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero"})
	a := newTestApp(deps)
	a.view = viewAvatar

	// Enter submits; the mutation then comes back failed.
	a, _ = updateApp(t, a, keyEnter())
	a, _ = updateApp(t, a, avatarChosenMsg{err: errTest})

	if a.avatar.submitting {
		t.Fatal("failed mutation must clear the in-flight flag")
	}
	a, _ = updateApp(t, a, keyRunes("j"))
	if a.avatar.cursor != 1 {
		t.Errorf("cursor = %d after failure, want 1: selection must stay usable for a retry", a.avatar.cursor)
	}
	_, cmd := updateApp(t, a, keyEnter())
	if cmd == nil {
		t.Error("expected a fresh mutation command on retry")
	}
}

func TestTabSwitching(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)
	a.view = viewDashboard

	a, cmd := updateApp(t, a, keyRunes("2"))
	if a.view != viewQuests {
		t.Errorf("view = %v, want quests after '2'", a.view)
	}
	if cmd == nil {
		t.Error("expected quests load command on tab switch")
	}

	a, _ = updateApp(t, a, keyRunes("5"))
	if a.view != viewShop {
		t.Errorf("view = %v, want shop after '5'", a.view)
	}
}

func TestTabSwitchingBlockedBeforeAuth(t *testing.T) {
	a := newTestApp(newTestDeps(t))
	a.view = viewAuth

	a, _ = updateApp(t, a, keyRunes("2"))
	if a.view != viewAuth {
		t.Errorf("digits must type into the auth form, not switch tabs")
	}
}

func TestCompletionFlashesReward(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)
	a.view = viewDashboard

	a, cmd := updateApp(t, a, completionMsg{questID: "q1", result: &quest.CompletionResult{
		Reward: domain.CompletionReward{XPGained: 50, GoldGained: 25, NewStreak: 3},
	}})
	if cmd == nil {
		t.Fatal("expected reload + flash commands after completion")
	}

	// Drain the batch looking for the flash.
	var flash flashMsg
	found := drainForFlash(cmd, &flash)
	if !found {
		t.Fatal("expected a flash message in the completion batch")
	}
	if len(flash.lines) != 1 || !strings.Contains(flash.lines[0], "+50 XP, +25 Gold") {
		t.Errorf("flash = %v, want reward line", flash.lines)
	}
	if !strings.Contains(flash.lines[0], "3 day streak") {
		t.Errorf("flash = %v, want streak note", flash.lines)
	}
}

func TestCompletionFlashesLevelUp(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)

	_, cmd := updateApp(t, a, completionMsg{questID: "q1", result: &quest.CompletionResult{
		Reward: domain.CompletionReward{XPGained: 90, GoldGained: 45, LevelUp: true, NewLevel: 5},
	}})

	var flash flashMsg
	if !drainForFlash(cmd, &flash) {
		t.Fatal("expected a flash message")
	}
	if len(flash.lines) != 2 {
		t.Fatalf("flash lines = %d, want reward plus level-up", len(flash.lines))
	}
	if !strings.Contains(flash.lines[1], "level 5") {
		t.Errorf("level-up line = %q", flash.lines[1])
	}
}

func TestCompletionErrorFlashesAndResets(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)
	a.dashboard.completing = true
	a.quests.completing = true

	a, cmd := updateApp(t, a, completionMsg{questID: "q1", err: errTest})
	if a.dashboard.completing || a.quests.completing {
		t.Error("completion error must clear in-flight flags everywhere")
	}

	var flash flashMsg
	if !drainForFlash(cmd, &flash) {
		t.Fatal("expected an error flash")
	}
	if !flash.isErr {
		t.Error("expected error-styled flash")
	}
}

func TestFlashRendersAndClears(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)
	a.view = viewDashboard

	a, _ = updateApp(t, a, flashMsg{lines: []string{"Quest completed!"}})
	if !strings.Contains(a.View(), "Quest completed!") {
		t.Error("expected flash line in view")
	}

	a, _ = updateApp(t, a, flashClearMsg{})
	if strings.Contains(a.View(), "Quest completed!") {
		t.Error("expected flash cleared")
	}
}

func TestHeaderShowsUserStats(t *testing.T) {
	deps := authedDeps(t, &domain.User{
		Username: "hero", Level: 4, Gold: 321, Streak: 7,
		Avatar: &domain.Avatar{Name: "Warrior"},
	})
	a := newTestApp(deps)
	a.view = viewDashboard

	view := a.View()
	for _, want := range []string{"hero", "Lv 4", "321 gold", "7 day streak", "Warrior"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in header, got:\n%s", want, view)
		}
	}
}

func TestQuitKey(t *testing.T) {
	deps := authedDeps(t, &domain.User{Username: "hero", Avatar: &domain.Avatar{Name: "Mage"}})
	a := newTestApp(deps)
	a.view = viewDashboard

	_, cmd := updateApp(t, a, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

// drainForFlash executes a command tree until a flashMsg appears.
func drainForFlash(cmd tea.Cmd, out *flashMsg) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case flashMsg:
		*out = msg
		return true
	case tea.BatchMsg:
		for _, sub := range msg {
			if drainForFlash(sub, out) {
				return true
			}
		}
	}
	return false
}
