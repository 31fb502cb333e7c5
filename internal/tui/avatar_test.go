package tui

import (
	"strings"
	"testing"

	"github.com/emberforge/lifequest/pkg/domain"
)

func TestAvatarRendersCatalog(t *testing.T) {
	m := newAvatarModel(authedDeps(t, &domain.User{Username: "hero"}))
	view := m.View()
	for _, a := range domain.AvatarOptions {
		if !strings.Contains(view, a.Name) {
			t.Errorf("expected %q in avatar view, got:\n%s", a.Name, view)
		}
	}
	if !strings.Contains(view, "permanent") {
		t.Errorf("expected permanence warning, got:\n%s", view)
	}
}

func TestAvatarCursorBounds(t *testing.T) {
	m := newAvatarModel(authedDeps(t, &domain.User{Username: "hero"}))

	m, _ = m.Update(keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped at 0", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyRunes("j"))
	}
	if m.cursor != len(domain.AvatarOptions)-1 {
		t.Errorf("cursor = %d, want clamped at last option", m.cursor)
	}
}

func TestAvatarEnterSubmits(t *testing.T) {
	m := newAvatarModel(authedDeps(t, &domain.User{Username: "hero"}))

	m, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected avatar mutation command")
	}
	if !m.submitting {
		t.Error("expected submitting flag")
	}

	// Further keys are ignored while the mutation is in flight.
	before := m.cursor
	m, _ = m.Update(keyRunes("j"))
	if m.cursor != before {
		t.Error("cursor should freeze while submitting")
	}
}
