package domain

import "context"

// QuestionPlanner picks the next preference question for a participant
// given their conversation so far. Adaptive implementations may generate
// questions from the history; the default walks a fixed catalog.
type QuestionPlanner interface {
	NextQuestion(ctx context.Context, history []Exchange) (string, error)
}

// baseQuestions is the ordered preference question catalog.
var baseQuestions = []string{
	"What days of the week generally work best for you?",
	"What time of day do you prefer for activities?",
	"What types of activities do you enjoy most?",
	"Do you have any location preferences or restrictions?",
	"Are there any dietary restrictions or preferences I should know about?",
	"Do you have any mobility or accessibility needs?",
	"Are you bringing children, and if so, what are their ages?",
	"What's your comfort level with different types of transportation?",
	"Are there any budget considerations I should be aware of?",
	"What's most important to you for this event (e.g., socializing, specific activity, etc.)?",
}

const followUpQuestion = "Based on what you've shared so far, is there anything specific that would make this event perfect for you?"

// QuestionCatalog walks a fixed question list in order, then falls back to
// a generic follow-up once the list is exhausted.
type QuestionCatalog struct {
	questions []string
}

// DefaultCatalog returns the built-in preference question catalog.
func DefaultCatalog() *QuestionCatalog {
	return &QuestionCatalog{questions: baseQuestions}
}

// NewQuestionCatalog returns a catalog over the provided questions.
func NewQuestionCatalog(questions []string) *QuestionCatalog {
	return &QuestionCatalog{questions: questions}
}

// NextQuestion implements QuestionPlanner.
func (c *QuestionCatalog) NextQuestion(_ context.Context, history []Exchange) (string, error) {
	asked := len(history)
	if c == nil || asked >= len(c.questions) {
		return followUpQuestion, nil
	}
	return c.questions[asked], nil
}
