package domain

import "context"

// SynthesisContext carries everything the synthesis function may use: the
// session framing, each participant's ordered conversation, and feedback
// on the plan being revised, when one exists.
type SynthesisContext struct {
	SessionID     string
	EventName     string
	OrganizerName string
	Participants  []ParticipantPreferences
	// PriorPlanJSON is the latest plan payload when this synthesis is a
	// revision, empty for a first plan.
	PriorPlanJSON string
	// OrganizerFeedback is the organizer's rejection note, if any.
	OrganizerFeedback string
	// ParticipantFeedback lists rejecting feedback notes on the plan being
	// revised, in submission order.
	ParticipantFeedback []string
}

// ParticipantPreferences is one participant's contribution to synthesis.
type ParticipantPreferences struct {
	Name       string
	CommMethod CommMethod
	History    []Exchange
}

// PlanSynthesizer produces an opaque structured plan payload from collected
// preferences. It is treated as a pure function: no side effects on the
// store beyond the caller persisting its result.
type PlanSynthesizer interface {
	Synthesize(ctx context.Context, input SynthesisContext) (string, error)
}
