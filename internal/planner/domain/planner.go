package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/rallypoint/internal/platform/id"
)

// Config wires the planner aggregate and both controllers.
type Config struct {
	Store       Store
	Synthesizer PlanSynthesizer
	Questions   QuestionPlanner
	Notifier    Notifier
	Clock       func() time.Time
	NewID       func() (string, error)
	// SoftLimit, HardMax, and CompletionQuorum tune the controllers; zero
	// values select the defaults.
	SoftLimit        int
	HardMax          int
	CompletionQuorum int
}

// Planner is the single entry point composing the preference collection
// loop and the plan lifecycle into one session-level surface. It is the
// sole authority for session readiness and completion.
type Planner struct {
	store     Store
	collector *Collector
	lifecycle *Lifecycle
	notifier  Notifier
	clock     func() time.Time
	newID     func() (string, error)
}

// New constructs the planner aggregate.
func New(cfg Config) *Planner {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	collector := NewCollector(CollectorConfig{
		Sessions:     cfg.Store,
		Conversation: cfg.Store,
		Questions:    cfg.Questions,
		Notifier:     cfg.Notifier,
		Clock:        cfg.Clock,
		NewID:        cfg.NewID,
		SoftLimit:    cfg.SoftLimit,
		HardMax:      cfg.HardMax,
	})
	lifecycle := NewLifecycle(LifecycleConfig{
		Sessions:         cfg.Store,
		Conversation:     cfg.Store,
		Plans:            cfg.Store,
		Synthesizer:      cfg.Synthesizer,
		Notifier:         cfg.Notifier,
		Clock:            cfg.Clock,
		NewID:            cfg.NewID,
		CompletionQuorum: cfg.CompletionQuorum,
	})
	return &Planner{
		store:     cfg.Store,
		collector: collector,
		lifecycle: lifecycle,
		notifier:  cfg.Notifier,
		clock:     cfg.Clock,
		newID:     cfg.NewID,
	}
}

// InvitedParticipant is one person to invite when creating a session.
type InvitedParticipant struct {
	Name    string
	Contact string
}

// CreateSessionInput describes one planning request.
type CreateSessionInput struct {
	OrganizerName    string
	OrganizerContact string
	EventName        string
	Participants     []InvitedParticipant
}

// CreateSession creates a session with its participant roster and emits an
// outreach message per participant. The session row is written before any
// participant row so an interruption never leaves orphans.
func (p *Planner) CreateSession(ctx context.Context, input CreateSessionInput) (Session, []Participant, error) {
	if p == nil || p.store == nil {
		return Session{}, nil, ErrStoreNotConfigured
	}
	if strings.TrimSpace(input.OrganizerName) == "" {
		return Session{}, nil, ErrOrganizerNameRequired
	}
	if strings.TrimSpace(input.OrganizerContact) == "" {
		return Session{}, nil, ErrOrganizerContactRequired
	}
	if strings.TrimSpace(input.EventName) == "" {
		return Session{}, nil, ErrEventNameRequired
	}
	if len(input.Participants) == 0 {
		return Session{}, nil, ErrParticipantsRequired
	}
	for _, invited := range input.Participants {
		if strings.TrimSpace(invited.Name) == "" {
			return Session{}, nil, ErrParticipantNameRequired
		}
		if strings.TrimSpace(invited.Contact) == "" {
			return Session{}, nil, ErrParticipantContactRequired
		}
	}

	sessionID, err := p.newID()
	if err != nil {
		return Session{}, nil, fmt.Errorf("generate session id: %w", err)
	}
	session := Session{
		ID:               sessionID,
		OrganizerName:    strings.TrimSpace(input.OrganizerName),
		OrganizerContact: strings.TrimSpace(input.OrganizerContact),
		EventName:        strings.TrimSpace(input.EventName),
		Status:           SessionStatusActive,
		CreatedAt:        p.now(),
	}
	if err := p.store.PutSession(ctx, session); err != nil {
		return Session{}, nil, err
	}

	participants := make([]Participant, 0, len(input.Participants))
	for _, invited := range input.Participants {
		participantID, err := p.newID()
		if err != nil {
			return Session{}, nil, fmt.Errorf("generate participant id: %w", err)
		}
		participant := Participant{
			ID:        participantID,
			SessionID: session.ID,
			Name:      strings.TrimSpace(invited.Name),
			Contact:   strings.TrimSpace(invited.Contact),
			State:     CollectionStateCollecting,
			CreatedAt: p.now(),
		}
		if err := p.store.PutParticipant(ctx, participant); err != nil {
			return Session{}, nil, err
		}
		participants = append(participants, participant)
	}

	for _, participant := range participants {
		notify(ctx, p.notifier, Message{
			Kind:          MessageOutreach,
			SessionID:     session.ID,
			EventName:     session.EventName,
			OrganizerName: session.OrganizerName,
			Recipient:     recipientFor(participant),
			ParticipantID: participant.ID,
		})
	}
	return session, participants, nil
}

// RecordCommMethod delegates to the preference collection controller.
func (p *Planner) RecordCommMethod(ctx context.Context, participantID string, reply string) (Outcome, error) {
	return p.collector.RecordCommMethod(ctx, participantID, reply)
}

// RecordResponse delegates to the preference collection controller.
func (p *Planner) RecordResponse(ctx context.Context, participantID string, questionID string, text string) (Outcome, error) {
	return p.collector.RecordResponse(ctx, participantID, questionID, text)
}

// MarkDone delegates to the preference collection controller.
func (p *Planner) MarkDone(ctx context.Context, participantID string) (Outcome, error) {
	return p.collector.MarkDone(ctx, participantID)
}

// RecordContinuation delegates to the preference collection controller.
func (p *Planner) RecordContinuation(ctx context.Context, participantID string, keepGoing bool) (Outcome, error) {
	return p.collector.RecordContinuation(ctx, participantID, keepGoing)
}

// GenerationEligibility delegates to the plan lifecycle controller.
func (p *Planner) GenerationEligibility(ctx context.Context, sessionID string) (Eligibility, error) {
	return p.lifecycle.GenerationEligibility(ctx, sessionID)
}

// GeneratePlan delegates to the plan lifecycle controller.
func (p *Planner) GeneratePlan(ctx context.Context, sessionID string) (Plan, error) {
	return p.lifecycle.GeneratePlan(ctx, sessionID)
}

// RecordOrganizerDecision delegates to the plan lifecycle controller.
func (p *Planner) RecordOrganizerDecision(ctx context.Context, planID string, approved bool, feedback string) (Plan, error) {
	return p.lifecycle.RecordOrganizerDecision(ctx, planID, approved, feedback)
}

// RecordParticipantFeedback delegates to the plan lifecycle controller.
func (p *Planner) RecordParticipantFeedback(ctx context.Context, participantID string, planID string, accepted bool, feedback string) (PlanFeedback, error) {
	return p.lifecycle.RecordParticipantFeedback(ctx, participantID, planID, accepted, feedback)
}

// ParticipantStatus is one roster row in a status report.
type ParticipantStatus struct {
	ID         string
	Name       string
	State      CollectionState
	CommMethod CommMethod
}

// RosterStatus summarizes preference collection across a session's roster.
type RosterStatus struct {
	Total           int
	Completed       int
	Pending         int
	CompletePercent float64
	Participants    []ParticipantStatus
}

// PlanSummary summarizes the session's plan history for a status report.
type PlanSummary struct {
	LatestPlanID         string
	LatestPlanStatus     PlanStatus
	LatestApprovedPlanID string
}

// StatusReport is the session aggregate's full derived view.
type StatusReport struct {
	Session Session
	Phase   Phase
	Roster  RosterStatus
	// Plan is nil until a first plan is generated.
	Plan *PlanSummary
}

// Status derives the session's current lifecycle view. The reported
// session status folds in the projection: a session whose phase is
// completed reports SessionStatusCompleted even though only cancellation
// is stored explicitly.
func (p *Planner) Status(ctx context.Context, sessionID string) (StatusReport, error) {
	if p == nil || p.store == nil {
		return StatusReport{}, ErrStoreNotConfigured
	}
	session, err := p.store.GetSession(ctx, sessionID)
	if err != nil {
		return StatusReport{}, err
	}
	participants, err := p.store.ListParticipants(ctx, sessionID)
	if err != nil {
		return StatusReport{}, err
	}

	phase, err := p.lifecycle.ProjectPhase(ctx, session, participants)
	if err != nil {
		return StatusReport{}, err
	}
	if phase == PhaseCompleted {
		session.Status = SessionStatusCompleted
	}

	report := StatusReport{
		Session: session,
		Phase:   phase,
		Roster:  rosterStatus(participants),
	}

	latest, err := p.store.LatestPlan(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return StatusReport{}, err
	}
	if err == nil {
		summary := PlanSummary{
			LatestPlanID:     latest.ID,
			LatestPlanStatus: latest.Status,
		}
		approved, err := p.store.LatestApprovedPlan(ctx, sessionID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return StatusReport{}, err
		}
		if err == nil {
			summary.LatestApprovedPlanID = approved.ID
		}
		report.Plan = &summary
	}
	return report, nil
}

// CancelSession marks a session cancelled. Cancellation is the only
// session status stored explicitly; it is permanent.
func (p *Planner) CancelSession(ctx context.Context, sessionID string) (Session, error) {
	if p == nil || p.store == nil {
		return Session{}, ErrStoreNotConfigured
	}
	session, err := p.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.Status == SessionStatusCancelled {
		return Session{}, ErrSessionCancelled
	}
	session.Status = SessionStatusCancelled
	if err := p.store.PutSession(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// RouteInboundReply routes a raw webhook reply to the right collection
// step based on the sender's state: channel choice first, then
// continuation decisions, then answers to the open question. Replies from
// completed participants are acknowledged without reopening the loop.
func (p *Planner) RouteInboundReply(ctx context.Context, contact string, body string) (Outcome, error) {
	if p == nil || p.store == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	participant, err := p.store.FindParticipantByContact(ctx, contact)
	if err != nil {
		return Outcome{}, err
	}

	switch {
	case participant.State == CollectionStateComplete:
		return Outcome{Next: NextComplete, Participant: participant}, nil
	case participant.CommMethod == "":
		return p.collector.RecordCommMethod(ctx, participant.ID, body)
	case participant.State == CollectionStateAwaitingContinuation:
		return p.collector.RecordContinuation(ctx, participant.ID, ParseContinuationReply(body))
	default:
		question, err := p.store.LatestUnansweredQuestion(ctx, participant.ID)
		if errors.Is(err, ErrNotFound) {
			// No open question to answer; treat explicit stop words as an
			// "I'm done" signal, otherwise restart the question loop.
			if isStopReply(body) {
				return p.collector.MarkDone(ctx, participant.ID)
			}
			return p.collector.reissue(ctx, participant.ID)
		}
		if err != nil {
			return Outcome{}, err
		}
		return p.collector.RecordResponse(ctx, participant.ID, question.ID, body)
	}
}

func isStopReply(body string) bool {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "no", "n", "stop", "done", "finish", "finished":
		return true
	default:
		return false
	}
}

func (p *Planner) now() time.Time {
	if p.clock == nil {
		return time.Now().UTC()
	}
	return p.clock().UTC()
}
