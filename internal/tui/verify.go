package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

type verifyStage int

const (
	verifyPhoto verifyStage = iota
	verifyNotes
	verifyQuiz
)

type photoUploadedMsg struct{ err error }

type quizGeneratedMsg struct {
	questions []domain.QuizQuestion
	err       error
}

type quizSubmittedMsg struct {
	result *domain.QuizResult
	err    error
}

// verifyModel walks one quest through proof of completion. Study
// quests take a notes-driven quiz; everything else uploads a photo.
// The photo itself is read from disk fresh on every attempt.
type verifyModel struct {
	deps    *Deps
	questID string
	title   string
	stage   verifyStage

	photoPath string
	notes     string
	questions []domain.QuizQuestion
	qIdx      int
	lastScore *domain.QuizResult

	busy      bool
	errText   string
	done      bool
	cancelled bool
	width     int
	height    int
}

func newVerifyModel(deps *Deps) verifyModel {
	return verifyModel{deps: deps}
}

func (m *verifyModel) begin(q domain.Quest) {
	m.deps.Ctrl.StartVerification(q.ID)
	m.questID = q.ID
	m.title = q.Title
	if q.Category == "study" {
		m.stage = verifyNotes
	} else {
		m.stage = verifyPhoto
	}
}

func (m verifyModel) Update(msg tea.Msg) (verifyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case photoUploadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		m.done = true
		return m, nil

	case quizGeneratedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		if len(msg.questions) == 0 {
			m.errText = "no quiz came back, add more detail to your notes"
			return m, nil
		}
		m.errText = ""
		m.questions = msg.questions
		m.qIdx = 0
		m.stage = verifyQuiz
		return m, nil

	case quizSubmittedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = client.Message(msg.err)
			return m, nil
		}
		if msg.result.Passed {
			m.done = true
			return m, nil
		}
		// Failed: answers stay selected for revision.
		m.lastScore = msg.result
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m verifyModel) handleKey(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.cancelled = true
		return m, nil
	}

	switch m.stage {
	case verifyPhoto:
		return m.handlePhotoKey(msg)
	case verifyNotes:
		return m.handleNotesKey(msg)
	case verifyQuiz:
		return m.handleQuizKey(msg)
	}
	return m, nil
}

func (m verifyModel) handlePhotoKey(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.photoPath)
		if path == "" {
			m.errText = "enter a photo path"
			return m, nil
		}
		m.busy = true
		m.errText = ""
		ctrl := m.deps.Ctrl
		return m, func() tea.Msg {
			data, err := os.ReadFile(path)
			if err != nil {
				return photoUploadedMsg{err: fmt.Errorf("read photo: %w", err)}
			}
			return photoUploadedMsg{err: ctrl.UploadPhoto(context.Background(), filepath.Base(path), data)}
		}
	default:
		m.errText = ""
		m.photoPath = editRune(m.photoPath, msg.String())
	}
	return m, nil
}

func (m verifyModel) handleNotesKey(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.busy = true
		m.errText = ""
		notes := m.notes
		ctrl := m.deps.Ctrl
		return m, func() tea.Msg {
			questions, err := ctrl.GenerateQuiz(context.Background(), notes)
			return quizGeneratedMsg{questions: questions, err: err}
		}
	case "enter":
		m.notes = editRune(m.notes, " ")
	default:
		m.errText = ""
		m.notes = editRune(m.notes, msg.String())
	}
	return m, nil
}

func (m verifyModel) handleQuizKey(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	sess := m.deps.Ctrl.Verification()
	if sess == nil {
		m.cancelled = true
		return m, nil
	}
	if len(m.questions) == 0 {
		return m, nil
	}

	key := msg.String()
	switch key {
	case "j", "down":
		if m.qIdx < len(m.questions)-1 {
			m.qIdx++
		}
	case "k", "up":
		if m.qIdx > 0 {
			m.qIdx--
		}
	case "left", "right":
		opts := m.questions[m.qIdx].Options
		if len(opts) == 0 {
			return m, nil
		}
		delta := 1
		if key == "left" {
			delta = -1
		}
		// Answers hold option indexes as strings, the grading
		// format the server expects.
		next := 0
		if cur, err := strconv.Atoi(sess.Answers[m.qIdx]); err == nil {
			next = (cur + delta + len(opts)) % len(opts)
		}
		sess.SetAnswer(m.qIdx, strconv.Itoa(next))
	case "ctrl+s":
		m.busy = true
		m.errText = ""
		m.lastScore = nil
		ctrl := m.deps.Ctrl
		return m, func() tea.Msg {
			result, err := ctrl.SubmitQuiz(context.Background())
			return quizSubmittedMsg{result: result, err: err}
		}
	default:
		// Number keys pick an option for the current question.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			opts := m.questions[m.qIdx].Options
			idx := int(key[0] - '1')
			if idx < len(opts) {
				sess.SetAnswer(m.qIdx, strconv.Itoa(idx))
			}
		}
	}
	return m, nil
}

func (m verifyModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Prove it: ") + normalStyle.Render(truncStr(m.title, 50)) + "\n\n")

	switch m.stage {
	case verifyPhoto:
		b.WriteString(" " + normalStyle.Render("Upload a photo as evidence.") + "\n\n")
		b.WriteString(" " + inputPromptStyle.Render("path") + ": " + m.photoPath + "█\n")
	case verifyNotes:
		b.WriteString(" " + normalStyle.Render("Paste your study notes; a quiz will be generated from them.") + "\n\n")
		b.WriteString(" " + inputPromptStyle.Render("notes") + ": " + truncStr(m.notes, 600) + "█\n")
	case verifyQuiz:
		m.renderQuiz(&b)
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(" " + dimStyle.Render("working..."))
	} else if m.errText != "" {
		b.WriteString(" " + errorStyle.Render(m.errText))
	}
	return b.String()
}

func (m verifyModel) renderQuiz(b *strings.Builder) {
	sess := m.deps.Ctrl.Verification()
	if sess == nil {
		return
	}
	for i, q := range m.questions {
		marker := " "
		qStyle := normalStyle
		if i == m.qIdx {
			marker = accentStyle.Render("▸")
			qStyle = selectedStyle
		}
		b.WriteString(fmt.Sprintf(" %s %d. %s\n", marker, i+1, qStyle.Render(q.Question)))
		for j, opt := range q.Options {
			style := dimStyle
			pick := " "
			if sess.Answers[i] == strconv.Itoa(j) {
				style = successStyle
				pick = "●"
			}
			b.WriteString(fmt.Sprintf("     %s %d) %s\n", pick, j+1, style.Render(opt)))
		}
	}
	if m.lastScore != nil {
		b.WriteString("\n " + errorStyle.Render(
			fmt.Sprintf("Not quite: %d/%d. Adjust your answers and try again.", m.lastScore.Score, m.lastScore.Total)) + "\n")
	}
}

func (m verifyModel) helpKeys() string {
	switch m.stage {
	case verifyPhoto:
		return helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
	case verifyNotes:
		return helpEntry("ctrl+s", "generate quiz") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("j/k", "question") + "  " + helpEntry("1-9/←/→", "answer") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "cancel")
	}
}
