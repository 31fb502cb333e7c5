package domain

// QuizQuestion is one multiple-choice question of a generated quiz.
// Answers are submitted as stringified option indexes ("0", "1", ...),
// aligned positionally with the question order the server returned.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizResult is the grading outcome of a quiz submission.
type QuizResult struct {
	Passed bool `json:"passed"`
	Score  int  `json:"score"`
	Total  int  `json:"total"`
}
