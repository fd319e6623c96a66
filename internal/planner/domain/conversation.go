package domain

import "time"

// Question is one round of the preference collection loop. Questions are
// append-only and ordered by creation time; the order reconstructs the
// conversation for plan synthesis.
type Question struct {
	ID            string
	ParticipantID string
	Text          string
	CreatedAt     time.Time
}

// Response is a participant's answer to one question. At most one response
// may exist per question per participant.
type Response struct {
	ID            string
	ParticipantID string
	QuestionID    string
	Text          string
	CreatedAt     time.Time
}

// Exchange pairs a question with its response, if any. Exchanges are
// ordered by question creation time.
type Exchange struct {
	Question Question
	Response *Response
}

// Answered reports whether the exchange has a stored response.
func (e Exchange) Answered() bool {
	return e.Response != nil
}
