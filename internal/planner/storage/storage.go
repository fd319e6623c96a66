// Package storage defines the persistence records and store contracts for
// planning state. Records mirror the domain entities with flat, driver
// friendly fields; internal/planner/app adapts between the two.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a write conflicts with uniqueness or
	// state-transition constraints.
	ErrConflict = errors.New("record conflict")
)

// SessionRecord stores one planning session row.
type SessionRecord struct {
	ID               string
	OrganizerName    string
	OrganizerContact string
	EventName        string
	Status           string
	CreatedAt        time.Time
}

// ParticipantRecord stores one invited participant row.
type ParticipantRecord struct {
	ID         string
	SessionID  string
	Name       string
	Contact    string
	CommMethod string
	State      string
	CreatedAt  time.Time
}

// QuestionRecord stores one preference question row.
type QuestionRecord struct {
	ID            string
	ParticipantID string
	Text          string
	CreatedAt     time.Time
}

// ResponseRecord stores one answer row. At most one row may exist per
// (participant, question) pair; the store enforces this with a uniqueness
// constraint and reports violations as ErrConflict.
type ResponseRecord struct {
	ID            string
	ParticipantID string
	QuestionID    string
	Text          string
	CreatedAt     time.Time
}

// ExchangeRecord joins one question with its response, if any.
type ExchangeRecord struct {
	Question QuestionRecord
	Response *ResponseRecord
}

// PlanRecord stores one plan proposal row.
type PlanRecord struct {
	ID                string
	SessionID         string
	PayloadJSON       string
	Status            string
	OrganizerFeedback string
	CreatedAt         time.Time
	DecidedAt         *time.Time
}

// FeedbackRecord stores one participant plan verdict row.
type FeedbackRecord struct {
	ID            string
	ParticipantID string
	PlanID        string
	Accepted      bool
	Feedback      string
	CreatedAt     time.Time
}

// FeedbackWithName is a feedback row joined with the participant's display
// name.
type FeedbackWithName struct {
	FeedbackRecord
	ParticipantName string
}

// SessionStore persists sessions and participants.
type SessionStore interface {
	PutSession(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, sessionID string) (SessionRecord, error)
	PutParticipant(ctx context.Context, record ParticipantRecord) error
	GetParticipant(ctx context.Context, participantID string) (ParticipantRecord, error)
	ListParticipantsBySession(ctx context.Context, sessionID string) ([]ParticipantRecord, error)
	FindParticipantByContact(ctx context.Context, contact string) (ParticipantRecord, error)
}

// ConversationStore persists the question/response history.
type ConversationStore interface {
	PutQuestion(ctx context.Context, record QuestionRecord) error
	GetQuestion(ctx context.Context, questionID string) (QuestionRecord, error)
	CountQuestionsByParticipant(ctx context.Context, participantID string) (int, error)
	LatestUnansweredQuestion(ctx context.Context, participantID string) (QuestionRecord, error)
	PutResponse(ctx context.Context, record ResponseRecord) error
	ListExchangesByParticipant(ctx context.Context, participantID string) ([]ExchangeRecord, error)
}

// PlanStore persists plan proposals and feedback. "Latest" follows the
// greatest creation time with record id as tiebreak.
type PlanStore interface {
	PutPlan(ctx context.Context, record PlanRecord) error
	GetPlan(ctx context.Context, planID string) (PlanRecord, error)
	LatestPlanBySession(ctx context.Context, sessionID string) (PlanRecord, error)
	LatestApprovedPlanBySession(ctx context.Context, sessionID string) (PlanRecord, error)
	// MarkPlanDecided updates a pending plan's status and organizer
	// feedback. It returns ErrConflict when the plan is not pending.
	MarkPlanDecided(ctx context.Context, planID string, status string, organizerFeedback string, decidedAt time.Time) (PlanRecord, error)
	PutFeedback(ctx context.Context, record FeedbackRecord) error
	ListFeedbackByPlan(ctx context.Context, planID string) ([]FeedbackWithName, error)
}
