package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type createField int

const (
	createTitle createField = iota
	createDescription
	createType
	createDifficulty
	createCategory
	createXP
	createGold
	numCreateFields
)

// createForm is the new-quest entry form. Type, difficulty, and
// category cycle through fixed options; the rest are text.
type createForm struct {
	title       string
	description string
	questType   string
	difficulty  string
	category    string
	xp          string
	gold        string

	focus      createField
	submitting bool
	errText    string
}

func newCreateForm() createForm {
	return createForm{
		questType:  domain.QuestTypes[0],
		difficulty: domain.DifficultyMedium,
		category:   domain.Categories[0],
		xp:         "50",
		gold:       "25",
	}
}

func (f createForm) isCycleField() bool {
	switch f.focus {
	case createType, createDifficulty, createCategory:
		return true
	}
	return false
}

func (m questsModel) handleCreateKey(msg tea.KeyMsg) (questsModel, tea.Cmd) {
	f := &m.form
	if f.submitting {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = questsList
		return m, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % numCreateFields
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + numCreateFields) % numCreateFields
	case "enter":
		if f.focus == numCreateFields-1 {
			return m.submitCreate()
		}
		f.focus++
	case "ctrl+s":
		return m.submitCreate()
	case "left", "right":
		if !f.isCycleField() {
			return m, nil
		}
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch f.focus {
		case createType:
			f.questType = cycle(domain.QuestTypes, f.questType, delta)
		case createDifficulty:
			f.difficulty = cycle(domain.Difficulties, f.difficulty, delta)
		case createCategory:
			f.category = cycle(domain.Categories, f.category, delta)
		}
	default:
		f.errText = ""
		switch f.focus {
		case createTitle:
			f.title = editRune(f.title, msg.String())
		case createDescription:
			f.description = editRune(f.description, msg.String())
		case createXP:
			f.xp = editDigits(f.xp, msg.String())
		case createGold:
			f.gold = editDigits(f.gold, msg.String())
		}
	}
	return m, nil
}

func (m questsModel) submitCreate() (questsModel, tea.Cmd) {
	f := &m.form
	xp, _ := strconv.Atoi(f.xp)
	gold, _ := strconv.Atoi(f.gold)
	req := client.CreateQuestRequest{
		Title:       strings.TrimSpace(f.title),
		Description: strings.TrimSpace(f.description),
		QuestType:   f.questType,
		Difficulty:  f.difficulty,
		XPReward:    xp,
		GoldReward:  gold,
		Category:    f.category,
	}

	f.submitting = true
	ctrl := m.deps.Ctrl
	return m, func() tea.Msg {
		q, err := ctrl.CreateQuest(context.Background(), req)
		return questCreatedMsg{quest: q, err: err}
	}
}

// editDigits is editRune restricted to numeric input.
func editDigits(text, key string) string {
	if key != "backspace" && (len(key) != 1 || key[0] < '0' || key[0] > '9') {
		return text
	}
	if len(text) >= 6 && key != "backspace" {
		return text
	}
	return editRune(text, key)
}

func (f createForm) View() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Post a new quest") + "\n\n")

	row := func(field createField, label, value string, cyclable bool) {
		cursor := " "
		style := metaStyle
		if field == f.focus {
			cursor = ">"
			style = selectedStyle
		}
		if cyclable {
			value = "< " + value + " >"
		} else if field == f.focus {
			value += "█"
		}
		if value == "" || value == "█" {
			if field == f.focus {
				value = "█"
			} else {
				value = inputPlaceholderStyle.Render("...")
			}
		}
		b.WriteString(" " + cursor + " " + style.Render(label) + ": " + value + "\n")
	}

	row(createTitle, "title", f.title, false)
	row(createDescription, "description", f.description, false)
	row(createType, "type", f.questType, true)
	row(createDifficulty, "difficulty", DifficultyStyle(f.difficulty).Render(f.difficulty), true)
	row(createCategory, "category", CategoryStyle(f.category).Render(f.category), true)
	row(createXP, "xp reward", f.xp, false)
	row(createGold, "gold reward", f.gold, false)

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(" " + dimStyle.Render("posting..."))
	} else if f.errText != "" {
		b.WriteString(" " + errorStyle.Render(f.errText))
	}
	return b.String()
}

func (f createForm) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("←/→", "cycle") + "  " + helpEntry("ctrl+s", "post") + "  " + helpEntry("esc", "cancel")
}
