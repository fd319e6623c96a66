package domain

import "time"

// SessionStatus is the stored lifecycle state of a planning session.
type SessionStatus string

const (
	// SessionStatusActive means the session is still collecting preferences
	// or cycling through plan proposals.
	SessionStatusActive SessionStatus = "active"
	// SessionStatusCompleted means an approved plan stands with no
	// outstanding rejecting feedback.
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusCancelled means the organizer abandoned the session.
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is one instance of planning an activity for a group.
type Session struct {
	ID               string
	OrganizerName    string
	OrganizerContact string
	EventName        string
	Status           SessionStatus
	CreatedAt        time.Time
}

// Phase is the derived projection of where a session sits in the planning
// lifecycle. It is computed from participant and plan state, never stored.
type Phase string

const (
	// PhaseCollecting means too few participants have completed preferences
	// for plan generation.
	PhaseCollecting Phase = "collecting"
	// PhaseReady means the completion quorum is met and no plan is pending.
	PhaseReady Phase = "ready"
	// PhasePlanned means a proposed plan awaits the organizer's decision.
	PhasePlanned Phase = "planned"
	// PhaseApproved means an approved plan awaits participant feedback.
	PhaseApproved Phase = "approved"
	// PhaseRevisionNeeded means the latest plan was rejected, or the
	// approved plan drew rejecting participant feedback.
	PhaseRevisionNeeded Phase = "revision_needed"
	// PhaseCompleted means every participant accepted the approved plan.
	PhaseCompleted Phase = "completed"
	// PhaseCancelled mirrors a cancelled session.
	PhaseCancelled Phase = "cancelled"
)
