package tui

import (
	"strings"
	"testing"

	"github.com/emberforge/lifequest/pkg/domain"
)

func newTestQuests(t *testing.T) questsModel {
	m := newQuestsModel(newTestDeps(t))
	m.width = 80
	m.height = 30
	return m
}

func loadedQuests() []domain.Quest {
	return []domain.Quest{
		{ID: "q1", Title: "Slay the inbox", Description: "Reach inbox zero", Difficulty: "hard", Category: "productivity", QuestType: "daily", XPReward: 40, GoldReward: 20},
		{ID: "q2", Title: "Flashcards", Description: "Review the deck", Difficulty: "easy", Category: "study", QuestType: "one-time", XPReward: 15, GoldReward: 5},
	}
}

func TestQuestsRendersList(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(questsLoadedMsg{quests: loadedQuests()})

	view := m.View()
	if !strings.Contains(view, "Slay the inbox") || !strings.Contains(view, "Flashcards") {
		t.Errorf("expected quest titles in view, got:\n%s", view)
	}
	// Description only shows for the selected row.
	if !strings.Contains(view, "Reach inbox zero") {
		t.Errorf("expected selected quest description, got:\n%s", view)
	}
	if strings.Contains(view, "Review the deck") {
		t.Errorf("unselected quest description should be hidden, got:\n%s", view)
	}
}

func TestQuestsEmptyState(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(questsLoadedMsg{quests: nil})
	if !strings.Contains(m.View(), "the board is empty") {
		t.Errorf("expected empty-board hint, got:\n%s", m.View())
	}
}

func TestQuestsEditingModes(t *testing.T) {
	m := newTestQuests(t)
	if m.editing() {
		t.Error("list mode should not report editing")
	}

	m, _ = m.Update(keyRunes("n"))
	if m.mode != questsCreate || !m.editing() {
		t.Error("'n' should enter the create form")
	}

	m, _ = m.Update(keyEsc())
	if m.mode != questsList {
		t.Error("esc should return to the list")
	}

	m, _ = m.Update(keyRunes("g"))
	if m.mode != questsGenerate || !m.editing() {
		t.Error("'g' should open the category picker")
	}
}

func TestCreateFormCyclesDifficulty(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))

	m.form.focus = createDifficulty
	if m.form.difficulty != domain.DifficultyMedium {
		t.Fatalf("default difficulty = %q, want medium", m.form.difficulty)
	}
	m, _ = m.Update(keyRight())
	if m.form.difficulty != domain.DifficultyHard {
		t.Errorf("difficulty after right = %q, want hard", m.form.difficulty)
	}
	m, _ = m.Update(keyLeft())
	m, _ = m.Update(keyLeft())
	if m.form.difficulty != domain.DifficultyEasy {
		t.Errorf("difficulty after two lefts = %q, want easy", m.form.difficulty)
	}
}

func TestCreateFormTypesIntoTitle(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))

	for _, ch := range "Run" {
		m, _ = m.Update(keyRunes(string(ch)))
	}
	if m.form.title != "Run" {
		t.Errorf("title = %q, want %q", m.form.title, "Run")
	}
}

func TestCreateFormRejectsLettersInRewards(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))
	m.form.focus = createXP

	m, _ = m.Update(keyRunes("x"))
	if m.form.xp != "50" {
		t.Errorf("xp = %q after letter, want unchanged default", m.form.xp)
	}
	m, _ = m.Update(keyRunes("0"))
	if m.form.xp != "500" {
		t.Errorf("xp = %q after digit, want %q", m.form.xp, "500")
	}
}

func TestCreateSubmitReturnsCommand(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))
	m.form.title = "Stretch"
	m.form.description = "Ten minutes"

	m, cmd := m.Update(keyCtrlS())
	if cmd == nil {
		t.Fatal("expected submit command on ctrl+s")
	}
	if !m.form.submitting {
		t.Error("expected submitting flag while request is in flight")
	}
}

func TestQuestCreatedReturnsToListAndReloads(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))

	m, cmd := m.Update(questCreatedMsg{quest: &domain.Quest{ID: "new", Title: "Fresh quest"}})
	if m.mode != questsList {
		t.Error("expected return to list after creation")
	}
	if cmd == nil {
		t.Error("expected reload command after creation")
	}
	if !strings.Contains(m.View(), "Fresh quest") {
		t.Errorf("expected creation note in view, got:\n%s", m.View())
	}
}

func TestQuestCreatedErrorStaysInForm(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("n"))
	m.form.submitting = true

	m, _ = m.Update(questCreatedMsg{err: errTest})
	if m.mode != questsCreate {
		t.Error("a failed creation should keep the form open")
	}
	if m.form.errText == "" {
		t.Error("expected form error text")
	}
}

func TestGeneratePickerSelectsCategory(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(keyRunes("g"))
	m, _ = m.Update(keyRunes("j"))

	_, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected generate command on enter")
	}
}

func TestVerifyRoutesByCategory(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(questsLoadedMsg{quests: loadedQuests()})

	// First quest is productivity: photo proof.
	m, _ = m.Update(keyRunes("v"))
	if m.mode != questsVerify {
		t.Fatal("'v' should open verification")
	}
	if m.verify.stage != verifyPhoto {
		t.Errorf("stage = %v for non-study quest, want photo", m.verify.stage)
	}
	m, _ = m.Update(keyEsc())
	if m.mode != questsList {
		t.Fatal("esc should abandon verification")
	}
	if m.deps.Ctrl.Verification() != nil {
		t.Error("abandoning should close the verification session")
	}

	// Second quest is study: quiz path starts with notes.
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("v"))
	if m.verify.stage != verifyNotes {
		t.Errorf("stage = %v for study quest, want notes", m.verify.stage)
	}
}

func TestCompleteWhileInFlightIgnored(t *testing.T) {
	m := newTestQuests(t)
	m, _ = m.Update(questsLoadedMsg{quests: loadedQuests()})

	m, cmd := m.Update(keyRunes("c"))
	if cmd == nil || !m.completing {
		t.Fatal("expected completion command and flag")
	}
	_, cmd = m.Update(keyRunes("c"))
	if cmd != nil {
		t.Error("second 'c' while in flight should be ignored")
	}
}
