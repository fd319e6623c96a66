package domain

import "time"

// PlanStatus is the organizer-decision state of one plan proposal.
type PlanStatus string

const (
	// PlanStatusPending means the plan awaits the organizer's decision.
	PlanStatusPending PlanStatus = "pending"
	// PlanStatusApproved means the organizer accepted the plan. Terminal
	// for the row; participant feedback collection unlocks.
	PlanStatusApproved PlanStatus = "approved"
	// PlanStatusRejected means the organizer declined the plan. Terminal
	// for the row; a revision is a new plan row.
	PlanStatusRejected PlanStatus = "rejected"
)

// Plan is one synthesized proposal for a session. Revisions are modeled as
// new rows; "latest" is derived from creation time with id as tiebreak.
// Once decided, a row is immutable except for further feedback entries.
type Plan struct {
	ID                string
	SessionID         string
	PayloadJSON       string
	Status            PlanStatus
	OrganizerFeedback string
	CreatedAt         time.Time
	DecidedAt         *time.Time
}

// Decided reports whether the organizer has ruled on this plan.
func (p Plan) Decided() bool {
	return p.Status != PlanStatusPending
}

// PlanFeedback is one participant's verdict on one plan. Entries are
// append-only; when a participant submits feedback on the same plan twice,
// the most recent entry wins for revision decisions.
type PlanFeedback struct {
	ID            string
	ParticipantID string
	PlanID        string
	Accepted      bool
	Feedback      string
	CreatedAt     time.Time
}

// FeedbackEntry is a feedback record joined with the participant's display
// name, ordered by feedback creation time.
type FeedbackEntry struct {
	PlanFeedback
	ParticipantName string
}

// latestFeedbackPerParticipant reduces an ordered feedback list to each
// participant's most recent entry.
func latestFeedbackPerParticipant(entries []FeedbackEntry) map[string]FeedbackEntry {
	latest := make(map[string]FeedbackEntry, len(entries))
	for _, entry := range entries {
		latest[entry.ParticipantID] = entry
	}
	return latest
}
