package domain

import "errors"

var (
	// ErrStoreNotConfigured indicates missing persistence wiring.
	ErrStoreNotConfigured = errors.New("planner store is not configured")
	// ErrSynthesizerNotConfigured indicates missing plan synthesis wiring.
	ErrSynthesizerNotConfigured = errors.New("plan synthesizer is not configured")
	// ErrNotFound indicates a referenced session, participant, question,
	// plan, or feedback record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStorageFailure indicates the store could not durably commit.
	ErrStorageFailure = errors.New("storage failure")

	// ErrOrganizerNameRequired indicates a session without an organizer name.
	ErrOrganizerNameRequired = errors.New("organizer name is required")
	// ErrOrganizerContactRequired indicates a session without organizer contact info.
	ErrOrganizerContactRequired = errors.New("organizer contact is required")
	// ErrEventNameRequired indicates a session without an event name.
	ErrEventNameRequired = errors.New("event name is required")
	// ErrParticipantsRequired indicates a session with an empty roster.
	ErrParticipantsRequired = errors.New("at least one participant is required")
	// ErrParticipantNameRequired indicates an invited participant without a name.
	ErrParticipantNameRequired = errors.New("participant name is required")
	// ErrParticipantContactRequired indicates an invited participant without contact info.
	ErrParticipantContactRequired = errors.New("participant contact is required")

	// ErrQuestionNotOwned indicates a response submitted against a question
	// that belongs to a different participant.
	ErrQuestionNotOwned = errors.New("question belongs to a different participant")
	// ErrQuestionAlreadyAnswered indicates a duplicate response submission.
	ErrQuestionAlreadyAnswered = errors.New("question is already answered")
	// ErrCollectionComplete indicates a collection-loop operation against a
	// participant whose preferences are already complete.
	ErrCollectionComplete = errors.New("preference collection is complete")
	// ErrNotAwaitingContinuation indicates a continuation decision for a
	// participant who was never asked to continue.
	ErrNotAwaitingContinuation = errors.New("participant is not awaiting a continuation decision")

	// ErrQuorumNotMet indicates plan generation attempted before enough
	// participants completed their preferences.
	ErrQuorumNotMet = errors.New("completion quorum not met")
	// ErrPlanAlreadyDecided indicates an organizer decision against a plan
	// that is no longer pending.
	ErrPlanAlreadyDecided = errors.New("plan is already decided")
	// ErrParticipantNotInSession indicates feedback from a participant who
	// does not belong to the plan's session.
	ErrParticipantNotInSession = errors.New("participant does not belong to the plan's session")
	// ErrSessionCancelled indicates an operation against a cancelled session.
	ErrSessionCancelled = errors.New("session is cancelled")
)
