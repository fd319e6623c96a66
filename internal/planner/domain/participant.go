package domain

import (
	"strings"
	"time"
)

// CollectionState is the preference-collection state of one participant.
//
// The state is a single tagged value rather than independent flags so that
// invalid combinations (complete and awaiting continuation at once) cannot
// be represented.
type CollectionState string

const (
	// CollectionStateCollecting means the participant is answering questions.
	CollectionStateCollecting CollectionState = "collecting"
	// CollectionStateAwaitingContinuation means the soft question limit was
	// reached and the participant was asked whether to keep going.
	CollectionStateAwaitingContinuation CollectionState = "awaiting_continuation"
	// CollectionStateComplete means preference collection is finished.
	// The state is terminal.
	CollectionStateComplete CollectionState = "complete"
)

// CommMethod is a participant's preferred outbound channel.
type CommMethod string

const (
	// CommMethodSMS delivers over text message.
	CommMethodSMS CommMethod = "sms"
	// CommMethodEmail delivers over email.
	CommMethodEmail CommMethod = "email"
	// CommMethodPhone delivers over a voice call.
	CommMethodPhone CommMethod = "phone"
)

// Participant is one invited individual whose preferences are collected.
// A participant is exclusively owned by its session and is never deleted,
// only marked complete.
type Participant struct {
	ID         string
	SessionID  string
	Name       string
	Contact    string
	CommMethod CommMethod
	State      CollectionState
	CreatedAt  time.Time
}

// PreferencesComplete reports whether preference collection finished for
// this participant. Completion is monotonic.
func (p Participant) PreferencesComplete() bool {
	return p.State == CollectionStateComplete
}

// ParseCommMethod normalizes a free-text channel reply. It returns an empty
// method when the reply is unrecognizable.
func ParseCommMethod(reply string) CommMethod {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "1", "text", "sms", "txt":
		return CommMethodSMS
	case "2", "email", "e-mail", "mail":
		return CommMethodEmail
	case "3", "phone", "call", "voice":
		return CommMethodPhone
	default:
		return ""
	}
}

// DefaultCommMethod picks a channel from the shape of a contact address:
// addresses containing "@" default to email, anything else to SMS.
func DefaultCommMethod(contact string) CommMethod {
	if strings.Contains(contact, "@") {
		return CommMethodEmail
	}
	return CommMethodSMS
}

// continuation replies treated as "keep asking questions".
var affirmativeReplies = map[string]struct{}{
	"yes":      {},
	"y":        {},
	"sure":     {},
	"ok":       {},
	"okay":     {},
	"continue": {},
}

// ParseContinuationReply interprets a free-text continuation decision.
// Anything not explicitly affirmative stops the collection loop.
func ParseContinuationReply(reply string) bool {
	_, ok := affirmativeReplies[strings.ToLower(strings.TrimSpace(reply))]
	return ok
}
