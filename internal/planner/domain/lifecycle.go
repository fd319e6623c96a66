package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/rallypoint/internal/platform/id"
)

// defaultCompletionQuorum is the minimum number of participants with
// complete preferences before a plan may be generated.
const defaultCompletionQuorum = 1

// Eligibility reports whether a session may generate a plan, queryable
// before generation is attempted.
type Eligibility struct {
	Total     int
	Completed int
	Quorum    int
	Eligible  bool
}

// LifecycleConfig wires the plan lifecycle controller.
type LifecycleConfig struct {
	Sessions     SessionStore
	Conversation ConversationStore
	Plans        PlanStore
	Synthesizer  PlanSynthesizer
	Notifier     Notifier
	Clock        func() time.Time
	NewID        func() (string, error)
	// CompletionQuorum is the minimum completed-participant count required
	// for plan generation; zero selects the default of 1.
	CompletionQuorum int
}

// Lifecycle governs plan generation eligibility, organizer decisions,
// participant feedback aggregation, and revision triggering.
type Lifecycle struct {
	sessions     SessionStore
	conversation ConversationStore
	plans        PlanStore
	synthesizer  PlanSynthesizer
	notifier     Notifier
	clock        func() time.Time
	newID        func() (string, error)
	quorum       int
	locks        *keyedMutex
}

// NewLifecycle constructs the plan lifecycle controller.
func NewLifecycle(cfg LifecycleConfig) *Lifecycle {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	if cfg.CompletionQuorum <= 0 {
		cfg.CompletionQuorum = defaultCompletionQuorum
	}
	return &Lifecycle{
		sessions:     cfg.Sessions,
		conversation: cfg.Conversation,
		plans:        cfg.Plans,
		synthesizer:  cfg.Synthesizer,
		notifier:     cfg.Notifier,
		clock:        cfg.Clock,
		newID:        cfg.NewID,
		quorum:       cfg.CompletionQuorum,
		locks:        newKeyedMutex(),
	}
}

// GenerationEligibility reports whether the session's completion quorum is
// met without attempting generation.
func (l *Lifecycle) GenerationEligibility(ctx context.Context, sessionID string) (Eligibility, error) {
	if l == nil || l.sessions == nil {
		return Eligibility{}, ErrStoreNotConfigured
	}
	participants, err := l.sessions.ListParticipants(ctx, sessionID)
	if err != nil {
		return Eligibility{}, err
	}
	return l.eligibility(participants), nil
}

func (l *Lifecycle) eligibility(participants []Participant) Eligibility {
	completed := 0
	for _, participant := range participants {
		if participant.PreferencesComplete() {
			completed++
		}
	}
	return Eligibility{
		Total:     len(participants),
		Completed: completed,
		Quorum:    l.quorum,
		Eligible:  completed >= l.quorum,
	}
}

// GeneratePlan synthesizes one new pending plan for the session. Generation
// fails without creating a plan row when the completion quorum is not met
// or the session is cancelled. Prior plan rows are never mutated.
func (l *Lifecycle) GeneratePlan(ctx context.Context, sessionID string) (Plan, error) {
	if l == nil || l.sessions == nil || l.conversation == nil || l.plans == nil {
		return Plan{}, ErrStoreNotConfigured
	}
	if l.synthesizer == nil {
		return Plan{}, ErrSynthesizerNotConfigured
	}
	unlock := l.locks.lock(sessionID)
	defer unlock()

	session, err := l.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return Plan{}, err
	}
	if session.Status == SessionStatusCancelled {
		return Plan{}, ErrSessionCancelled
	}

	participants, err := l.sessions.ListParticipants(ctx, sessionID)
	if err != nil {
		return Plan{}, err
	}
	eligibility := l.eligibility(participants)
	if !eligibility.Eligible {
		return Plan{}, fmt.Errorf("%d of %d participants complete, need %d: %w",
			eligibility.Completed, eligibility.Total, eligibility.Quorum, ErrQuorumNotMet)
	}

	input, err := l.synthesisContext(ctx, session, participants)
	if err != nil {
		return Plan{}, err
	}
	payload, err := l.synthesizer.Synthesize(ctx, input)
	if err != nil {
		return Plan{}, fmt.Errorf("synthesize plan: %w", err)
	}

	planID, err := l.newID()
	if err != nil {
		return Plan{}, fmt.Errorf("generate plan id: %w", err)
	}
	plan := Plan{
		ID:          planID,
		SessionID:   session.ID,
		PayloadJSON: payload,
		Status:      PlanStatusPending,
		CreatedAt:   l.now(),
	}
	if err := l.plans.PutPlan(ctx, plan); err != nil {
		return Plan{}, err
	}

	notify(ctx, l.notifier, Message{
		Kind:          MessagePlanProposed,
		SessionID:     session.ID,
		EventName:     session.EventName,
		OrganizerName: session.OrganizerName,
		Recipient: Recipient{
			Name:    session.OrganizerName,
			Contact: session.OrganizerContact,
		},
		PlanID:   plan.ID,
		PlanJSON: plan.PayloadJSON,
	})
	return plan, nil
}

// RecordOrganizerDecision transitions a pending plan to approved or
// rejected. The transition is terminal for the row; a second decision on
// the same plan is rejected and the first decision stands. Approval
// distributes the plan to every participant.
func (l *Lifecycle) RecordOrganizerDecision(ctx context.Context, planID string, approved bool, feedback string) (Plan, error) {
	if l == nil || l.sessions == nil || l.plans == nil {
		return Plan{}, ErrStoreNotConfigured
	}
	plan, err := l.plans.GetPlan(ctx, planID)
	if err != nil {
		return Plan{}, err
	}
	unlock := l.locks.lock(plan.SessionID)
	defer unlock()

	if plan.Decided() {
		return Plan{}, ErrPlanAlreadyDecided
	}
	status := PlanStatusRejected
	if approved {
		status = PlanStatusApproved
	}
	decided, err := l.plans.MarkPlanDecided(ctx, plan.ID, status, feedback, l.now())
	if err != nil {
		return Plan{}, err
	}

	if approved {
		if err := l.distribute(ctx, decided); err != nil {
			return Plan{}, err
		}
	}
	return decided, nil
}

// RecordParticipantFeedback appends one participant's verdict on a plan.
// Feedback is accepted for record-keeping regardless of the plan's status,
// but only feedback on an approved plan affects the session projection.
// Rejections of the approved plan are relayed to the organizer.
func (l *Lifecycle) RecordParticipantFeedback(ctx context.Context, participantID string, planID string, accepted bool, feedbackText string) (PlanFeedback, error) {
	if l == nil || l.sessions == nil || l.plans == nil {
		return PlanFeedback{}, ErrStoreNotConfigured
	}
	plan, err := l.plans.GetPlan(ctx, planID)
	if err != nil {
		return PlanFeedback{}, err
	}
	participant, err := l.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return PlanFeedback{}, err
	}
	if participant.SessionID != plan.SessionID {
		return PlanFeedback{}, ErrParticipantNotInSession
	}
	unlock := l.locks.lock(plan.SessionID)
	defer unlock()

	feedbackID, err := l.newID()
	if err != nil {
		return PlanFeedback{}, fmt.Errorf("generate feedback id: %w", err)
	}
	feedback := PlanFeedback{
		ID:            feedbackID,
		ParticipantID: participant.ID,
		PlanID:        plan.ID,
		Accepted:      accepted,
		Feedback:      feedbackText,
		CreatedAt:     l.now(),
	}
	if err := l.plans.PutFeedback(ctx, feedback); err != nil {
		return PlanFeedback{}, err
	}

	if plan.Status == PlanStatusApproved && !accepted {
		session, err := l.sessions.GetSession(ctx, plan.SessionID)
		if err != nil {
			return PlanFeedback{}, err
		}
		notify(ctx, l.notifier, Message{
			Kind:          MessagePlanRejected,
			SessionID:     session.ID,
			EventName:     session.EventName,
			OrganizerName: session.OrganizerName,
			Recipient: Recipient{
				Name:    session.OrganizerName,
				Contact: session.OrganizerContact,
			},
			ParticipantID: participant.ID,
			PlanID:        plan.ID,
			FeedbackText:  feedbackText,
			FeedbackFrom:  participant.Name,
		})
	}
	return feedback, nil
}

// ProjectPhase derives the session's lifecycle phase from participant and
// plan state. Any rejecting feedback among each participant's most recent
// entries on the approved plan marks the session revision-needed.
func (l *Lifecycle) ProjectPhase(ctx context.Context, session Session, participants []Participant) (Phase, error) {
	if l == nil || l.plans == nil {
		return "", ErrStoreNotConfigured
	}
	if session.Status == SessionStatusCancelled {
		return PhaseCancelled, nil
	}

	latest, err := l.plans.LatestPlan(ctx, session.ID)
	if errors.Is(err, ErrNotFound) {
		if l.eligibility(participants).Eligible {
			return PhaseReady, nil
		}
		return PhaseCollecting, nil
	}
	if err != nil {
		return "", err
	}

	switch latest.Status {
	case PlanStatusPending:
		return PhasePlanned, nil
	case PlanStatusRejected:
		return PhaseRevisionNeeded, nil
	}

	entries, err := l.plans.ListFeedback(ctx, latest.ID)
	if err != nil {
		return "", err
	}
	verdicts := latestFeedbackPerParticipant(entries)
	for _, verdict := range verdicts {
		if !verdict.Accepted {
			return PhaseRevisionNeeded, nil
		}
	}
	if len(verdicts) >= len(participants) && len(participants) > 0 {
		return PhaseCompleted, nil
	}
	return PhaseApproved, nil
}

func (l *Lifecycle) synthesisContext(ctx context.Context, session Session, participants []Participant) (SynthesisContext, error) {
	input := SynthesisContext{
		SessionID:     session.ID,
		EventName:     session.EventName,
		OrganizerName: session.OrganizerName,
		Participants:  make([]ParticipantPreferences, 0, len(participants)),
	}
	for _, participant := range participants {
		history, err := l.conversation.ListExchanges(ctx, participant.ID)
		if err != nil {
			return SynthesisContext{}, err
		}
		input.Participants = append(input.Participants, ParticipantPreferences{
			Name:       participant.Name,
			CommMethod: participant.CommMethod,
			History:    history,
		})
	}

	prior, err := l.plans.LatestPlan(ctx, session.ID)
	if errors.Is(err, ErrNotFound) {
		return input, nil
	}
	if err != nil {
		return SynthesisContext{}, err
	}
	input.PriorPlanJSON = prior.PayloadJSON
	input.OrganizerFeedback = prior.OrganizerFeedback
	entries, err := l.plans.ListFeedback(ctx, prior.ID)
	if err != nil {
		return SynthesisContext{}, err
	}
	for _, entry := range entries {
		if !entry.Accepted {
			input.ParticipantFeedback = append(input.ParticipantFeedback, entry.Feedback)
		}
	}
	return input, nil
}

func (l *Lifecycle) distribute(ctx context.Context, plan Plan) error {
	session, err := l.sessions.GetSession(ctx, plan.SessionID)
	if err != nil {
		return err
	}
	participants, err := l.sessions.ListParticipants(ctx, plan.SessionID)
	if err != nil {
		return err
	}
	for _, participant := range participants {
		notify(ctx, l.notifier, Message{
			Kind:          MessagePlanApproved,
			SessionID:     session.ID,
			EventName:     session.EventName,
			OrganizerName: session.OrganizerName,
			Recipient:     recipientFor(participant),
			ParticipantID: participant.ID,
			PlanID:        plan.ID,
			PlanJSON:      plan.PayloadJSON,
		})
	}
	return nil
}

func (l *Lifecycle) now() time.Time {
	if l.clock == nil {
		return time.Now().UTC()
	}
	return l.clock().UTC()
}
