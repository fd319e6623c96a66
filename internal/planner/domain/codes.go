package domain

import (
	"errors"
	"net/http"
)

// Code is a machine-readable classification of a domain error, used by the
// transport layer to pick a response status.
type Code string

const (
	// CodeUnknown classifies errors the domain does not recognize.
	CodeUnknown Code = "UNKNOWN"
	// CodeInvalidArgument classifies validation failures on input.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound classifies references to records that do not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeInvalidTransition classifies operations the current state
	// disallows. Permanent for the given input.
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	// CodePreconditionNotMet classifies plan generation attempted with
	// insufficient completed participants.
	CodePreconditionNotMet Code = "PRECONDITION_NOT_MET"
	// CodeStorageFailure classifies writes the store could not commit.
	// The only class appropriate for caller-side retry.
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// CodeOf classifies any error into a Code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrQuorumNotMet):
		return CodePreconditionNotMet
	case errors.Is(err, ErrQuestionNotOwned),
		errors.Is(err, ErrQuestionAlreadyAnswered),
		errors.Is(err, ErrCollectionComplete),
		errors.Is(err, ErrNotAwaitingContinuation),
		errors.Is(err, ErrPlanAlreadyDecided),
		errors.Is(err, ErrParticipantNotInSession),
		errors.Is(err, ErrSessionCancelled):
		return CodeInvalidTransition
	case errors.Is(err, ErrOrganizerNameRequired),
		errors.Is(err, ErrOrganizerContactRequired),
		errors.Is(err, ErrEventNameRequired),
		errors.Is(err, ErrParticipantsRequired),
		errors.Is(err, ErrParticipantNameRequired),
		errors.Is(err, ErrParticipantContactRequired):
		return CodeInvalidArgument
	case errors.Is(err, ErrStorageFailure):
		return CodeStorageFailure
	default:
		return CodeUnknown
	}
}

// HTTPStatus maps a code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition:
		return http.StatusConflict
	case CodePreconditionNotMet:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
