package domain

import "context"

// MessageKind identifies one outbound delivery template.
type MessageKind string

const (
	// MessageOutreach introduces the planner and asks for a channel choice.
	MessageOutreach MessageKind = "outreach"
	// MessageQuestion delivers one preference question.
	MessageQuestion MessageKind = "question"
	// MessageContinuationPrompt asks whether to keep answering questions.
	MessageContinuationPrompt MessageKind = "continuation_prompt"
	// MessageCompletionThanks thanks a participant for finishing.
	MessageCompletionThanks MessageKind = "completion_thanks"
	// MessagePlanProposed submits a pending plan to the organizer.
	MessagePlanProposed MessageKind = "plan_proposed"
	// MessagePlanApproved distributes an approved plan to a participant.
	MessagePlanApproved MessageKind = "plan_approved"
	// MessagePlanRejected tells the organizer a participant declined the plan.
	MessagePlanRejected MessageKind = "plan_rejected"
)

// Recipient addresses one outbound message. Method may be empty when the
// recipient never chose a channel; the delivery layer falls back on the
// contact's shape.
type Recipient struct {
	Name    string
	Contact string
	Method  CommMethod
}

// Message is one delivery request emitted by the state machine. The core
// does not know or care whether delivery succeeds.
type Message struct {
	Kind          MessageKind
	SessionID     string
	EventName     string
	OrganizerName string
	Recipient     Recipient
	ParticipantID string
	QuestionID    string
	QuestionText  string
	PlanID        string
	PlanJSON      string
	FeedbackText  string
	FeedbackFrom  string
}

// Notifier delivers outbound messages. Implementations own retries and
// failure handling; the state machine fires and forgets.
type Notifier interface {
	Notify(ctx context.Context, message Message)
}

// NopNotifier discards all messages.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Message) {}

func notify(ctx context.Context, notifier Notifier, message Message) {
	if notifier == nil {
		return
	}
	notifier.Notify(ctx, message)
}
