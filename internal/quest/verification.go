package quest

import (
	"github.com/google/uuid"

	"github.com/emberforge/lifequest/pkg/domain"
)

// VerificationSession is the ephemeral client-side state of an open
// verification modal. It exists only while the modal is open and is
// discarded on close or successful submission, never persisted. The
// photo blob is deliberately not retained across attempts; a failed
// upload means the file must be re-attached.
type VerificationSession struct {
	ID      uuid.UUID
	QuestID string
	Notes   string

	// Quiz state. Answers is index-aligned with Questions; an empty
	// string marks an unanswered slot.
	Questions []domain.QuizQuestion
	Answers   []string
}

func newVerificationSession(questID string) *VerificationSession {
	return &VerificationSession{
		ID:      uuid.New(),
		QuestID: questID,
	}
}

// SetQuiz installs generated questions and resets every answer slot to
// the unanswered placeholder.
func (v *VerificationSession) SetQuiz(questions []domain.QuizQuestion) {
	v.Questions = questions
	v.Answers = make([]string, len(questions))
}

// SetAnswer records the answer for question i. Out-of-range indexes
// are ignored.
func (v *VerificationSession) SetAnswer(i int, answer string) {
	if i < 0 || i >= len(v.Answers) {
		return
	}
	v.Answers[i] = answer
}

// AllAnswered reports whether every answer slot is filled.
func (v *VerificationSession) AllAnswered() bool {
	if len(v.Questions) == 0 || len(v.Answers) != len(v.Questions) {
		return false
	}
	for _, a := range v.Answers {
		if a == "" {
			return false
		}
	}
	return true
}
