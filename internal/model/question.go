package model

// QuizQuestion is one multiple-choice question from the seeded pool.
type QuizQuestion struct {
	ID       string   `json:"id" bson:"_id"`
	Prompt   string   `json:"prompt" bson:"prompt"`
	Options  []string `json:"options" bson:"options"`
	Answer   int      `json:"answer" bson:"answer"` // index into Options
	Category string   `json:"category,omitempty" bson:"category,omitempty"`
}

// Correct reports whether the chosen option index is the right answer.
func (q *QuizQuestion) Correct(choice int) bool {
	return choice == q.Answer
}

// QuestionView is the player-facing shape with the answer stripped.
type QuestionView struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

// View strips the answer for delivery to players.
func (q *QuizQuestion) View() QuestionView {
	return QuestionView{
		ID:       q.ID,
		Prompt:   q.Prompt,
		Options:  q.Options,
		Category: q.Category,
	}
}
