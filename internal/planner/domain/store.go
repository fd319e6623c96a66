package domain

import (
	"context"
	"time"
)

// SessionStore persists sessions and their participant rosters.
type SessionStore interface {
	PutSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	PutParticipant(ctx context.Context, participant Participant) error
	GetParticipant(ctx context.Context, participantID string) (Participant, error)
	ListParticipants(ctx context.Context, sessionID string) ([]Participant, error)
	FindParticipantByContact(ctx context.Context, contact string) (Participant, error)
}

// ConversationStore persists the question/response history per participant.
type ConversationStore interface {
	PutQuestion(ctx context.Context, question Question) error
	GetQuestion(ctx context.Context, questionID string) (Question, error)
	CountQuestions(ctx context.Context, participantID string) (int, error)
	LatestUnansweredQuestion(ctx context.Context, participantID string) (Question, error)
	// PutResponse returns ErrQuestionAlreadyAnswered when a response for the
	// same question and participant already exists.
	PutResponse(ctx context.Context, response Response) error
	ListExchanges(ctx context.Context, participantID string) ([]Exchange, error)
}

// PlanStore persists plan proposals and participant feedback.
type PlanStore interface {
	PutPlan(ctx context.Context, plan Plan) error
	GetPlan(ctx context.Context, planID string) (Plan, error)
	LatestPlan(ctx context.Context, sessionID string) (Plan, error)
	LatestApprovedPlan(ctx context.Context, sessionID string) (Plan, error)
	// MarkPlanDecided transitions a pending plan to the given status. It
	// returns ErrPlanAlreadyDecided when the plan is no longer pending.
	MarkPlanDecided(ctx context.Context, planID string, status PlanStatus, organizerFeedback string, decidedAt time.Time) (Plan, error)
	PutFeedback(ctx context.Context, feedback PlanFeedback) error
	ListFeedback(ctx context.Context, planID string) ([]FeedbackEntry, error)
}

// Store is the full persistence boundary of the planning state machine.
type Store interface {
	SessionStore
	ConversationStore
	PlanStore
}
