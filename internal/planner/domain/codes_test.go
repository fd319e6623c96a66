package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want Code
	}{
		{nil, ""},
		{ErrNotFound, CodeNotFound},
		{fmt.Errorf("load session: %w", ErrNotFound), CodeNotFound},
		{ErrQuorumNotMet, CodePreconditionNotMet},
		{ErrQuestionNotOwned, CodeInvalidTransition},
		{ErrQuestionAlreadyAnswered, CodeInvalidTransition},
		{ErrCollectionComplete, CodeInvalidTransition},
		{ErrNotAwaitingContinuation, CodeInvalidTransition},
		{ErrPlanAlreadyDecided, CodeInvalidTransition},
		{ErrParticipantNotInSession, CodeInvalidTransition},
		{ErrSessionCancelled, CodeInvalidTransition},
		{ErrOrganizerNameRequired, CodeInvalidArgument},
		{ErrParticipantContactRequired, CodeInvalidArgument},
		{ErrStorageFailure, CodeStorageFailure},
		{fmt.Errorf("%w: disk full", ErrStorageFailure), CodeStorageFailure},
		{errors.New("something else"), CodeUnknown},
	}
	for _, tc := range tests {
		if got := CodeOf(tc.err); got != tc.want {
			t.Errorf("CodeOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidTransition, http.StatusConflict},
		{CodePreconditionNotMet, http.StatusPreconditionFailed},
		{CodeStorageFailure, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tc.code, got, tc.want)
		}
	}
}
