package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type questsMode int

const (
	questsList questsMode = iota
	questsCreate
	questsGenerate
	questsVerify
)

type questsLoadedMsg struct {
	quests []domain.Quest
	err    error
}

// questCreatedMsg covers both manual creation and server generation.
type questCreatedMsg struct {
	quest *domain.Quest
	err   error
}

type questsModel struct {
	deps       *Deps
	mode       questsMode
	quests     []domain.Quest
	cursor     int
	loading    bool
	completing bool
	errText    string
	note       string

	form      createForm
	genCursor int
	verify    verifyModel

	width  int
	height int
}

func newQuestsModel(deps *Deps) questsModel {
	return questsModel{deps: deps, form: newCreateForm(), verify: newVerifyModel(deps)}
}

func (m questsModel) Init() tea.Cmd {
	return m.load()
}

func (m questsModel) editing() bool {
	return m.mode != questsList
}

func (m questsModel) load() tea.Cmd {
	c := m.deps.Client
	return func() tea.Msg {
		quests, err := c.ActiveQuests(context.Background())
		return questsLoadedMsg{quests: quests, err: err}
	}
}

func (m questsModel) Update(msg tea.Msg) (questsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.verify.width = msg.Width
		m.verify.height = msg.Height
		return m, nil

	case questsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.quests = msg.quests
		if m.cursor >= len(m.quests) {
			m.cursor = 0
		}
		return m, nil

	case questCreatedMsg:
		m.form.submitting = false
		if msg.err != nil {
			if m.mode == questsCreate {
				m.form.errText = client.Message(msg.err)
			} else {
				m.errText = client.Message(msg.err)
				m.mode = questsList
			}
			return m, nil
		}
		m.mode = questsList
		m.form = newCreateForm()
		m.note = fmt.Sprintf("added %q", msg.quest.Title)
		m.loading = true
		return m, m.load()

	case completionMsg:
		m.completing = false
		return m, nil
	}

	if m.mode == questsVerify {
		var cmd tea.Cmd
		m.verify, cmd = m.verify.Update(msg)
		if m.verify.done {
			// Verification passed; completion itself is a separate call.
			questID := m.verify.questID
			m.mode = questsList
			m.verify = newVerifyModel(m.deps)
			m.completing = true
			ctrl := m.deps.Ctrl
			return m, func() tea.Msg {
				result, err := ctrl.CompleteQuest(context.Background(), questID)
				return completionMsg{questID: questID, result: result, err: err}
			}
		}
		if m.verify.cancelled {
			m.deps.Ctrl.CloseVerification()
			m.mode = questsList
			m.verify = newVerifyModel(m.deps)
		}
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.mode {
		case questsList:
			return m.handleListKey(key)
		case questsCreate:
			return m.handleCreateKey(key)
		case questsGenerate:
			return m.handleGenerateKey(key)
		}
	}
	return m, nil
}

func (m questsModel) handleListKey(msg tea.KeyMsg) (questsModel, tea.Cmd) {
	m.note = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.quests)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.mode = questsCreate
		m.form = newCreateForm()
	case "g":
		m.mode = questsGenerate
		m.genCursor = 0
	case "r":
		if !m.loading {
			m.loading = true
			return m, m.load()
		}
	case "y":
		if len(m.quests) > 0 {
			q := m.quests[m.cursor]
			if err := clipboard.WriteAll(q.Title + "\n" + q.Description); err != nil {
				m.errText = "clipboard unavailable"
			} else {
				m.note = "copied to clipboard"
			}
		}
	case "v":
		if len(m.quests) > 0 && !m.completing {
			q := m.quests[m.cursor]
			m.mode = questsVerify
			m.verify = newVerifyModel(m.deps)
			m.verify.begin(q)
		}
	case "c", "enter":
		if m.completing || len(m.quests) == 0 {
			return m, nil
		}
		m.completing = true
		q := m.quests[m.cursor]
		ctrl := m.deps.Ctrl
		return m, func() tea.Msg {
			result, err := ctrl.CompleteQuest(context.Background(), q.ID)
			return completionMsg{questID: q.ID, result: result, err: err}
		}
	}
	return m, nil
}

func (m questsModel) handleGenerateKey(msg tea.KeyMsg) (questsModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = questsList
	case "j", "down":
		if m.genCursor < len(domain.Categories)-1 {
			m.genCursor++
		}
	case "k", "up":
		if m.genCursor > 0 {
			m.genCursor--
		}
	case "enter":
		category := domain.Categories[m.genCursor]
		ctrl := m.deps.Ctrl
		m.note = "summoning a quest..."
		return m, func() tea.Msg {
			q, err := ctrl.GenerateQuest(context.Background(), category)
			return questCreatedMsg{quest: q, err: err}
		}
	}
	return m, nil
}

func (m questsModel) View() string {
	switch m.mode {
	case questsCreate:
		return m.form.View()
	case questsGenerate:
		return m.generateView()
	case questsVerify:
		return m.verify.View()
	}

	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Quest board") + "\n\n")

	if m.loading && len(m.quests) == 0 {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if len(m.quests) == 0 {
		b.WriteString(" " + dimStyle.Render("the board is empty, press n to post a quest or g to have one generated") + "\n")
	}

	for i, q := range m.quests {
		cursor := " "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			titleStyle = selectedStyle
		}
		b.WriteString(fmt.Sprintf(" %s %s  %s %s %s\n",
			cursor,
			titleStyle.Render(truncStr(q.Title, 44)),
			DifficultyStyle(q.Difficulty).Render(q.Difficulty),
			CategoryStyle(q.Category).Render(q.Category),
			metaStyle.Render(q.QuestType)))
		if i == m.cursor {
			b.WriteString("   " + dimStyle.Render(truncStr(q.Description, 70)) + "\n")
			b.WriteString("   " + xpStyle.Render(fmt.Sprintf("+%d xp", q.XPReward)) + " " +
				goldStyle.Render(fmt.Sprintf("+%d gold", q.GoldReward)) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.completing:
		b.WriteString(" " + dimStyle.Render("completing..."))
	case m.errText != "":
		b.WriteString(" " + errorStyle.Render(m.errText))
	case m.note != "":
		b.WriteString(" " + dimStyle.Render(m.note))
	}
	return b.String()
}

func (m questsModel) generateView() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Generate a quest") + "\n")
	b.WriteString(" " + dimStyle.Render("pick a category, esc to cancel") + "\n\n")
	for i, c := range domain.Categories {
		cursor := " "
		if i == m.genCursor {
			cursor = accentStyle.Render("▸")
		}
		b.WriteString(" " + cursor + " " + CategoryStyle(c).Render(c) + "\n")
	}
	if m.note != "" {
		b.WriteString("\n " + dimStyle.Render(m.note))
	}
	return b.String()
}

func (m questsModel) helpKeys() string {
	switch m.mode {
	case questsCreate:
		return m.form.helpKeys()
	case questsGenerate:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "generate") + "  " + helpEntry("esc", "back")
	case questsVerify:
		return m.verify.helpKeys()
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "new") + "  " + helpEntry("g", "generate") + "  " +
		helpEntry("v", "verify") + "  " + helpEntry("c", "complete") + "  " + helpEntry("y", "copy") + "  " + helpEntry("r", "refresh")
}
