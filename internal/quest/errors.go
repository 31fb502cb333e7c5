package quest

import "errors"

// Validation errors raised before any network call.
var (
	ErrTitleRequired      = errors.New("quest title is required")
	ErrDescriptionMissing = errors.New("quest description is required")
	ErrBadDifficulty      = errors.New("unknown difficulty")
	ErrBadCategory        = errors.New("unknown category")
	ErrNoPhoto            = errors.New("no photo selected")
	ErrEmptyNotes         = errors.New("study notes are required")
	ErrNoQuiz             = errors.New("no quiz has been generated")
	ErrUnansweredQuestion = errors.New("every question needs an answer")
	ErrNoVerification     = errors.New("no verification in progress")
	ErrInsufficientGold   = errors.New("not enough gold")
	ErrNotAuthenticated   = errors.New("not signed in")
)
