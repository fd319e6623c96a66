package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/rallypoint/internal/platform/id"
)

const (
	// defaultSoftLimit is the question count after which the participant is
	// asked whether to continue.
	defaultSoftLimit = 5
	// defaultHardMax is the question count that forces completion.
	defaultHardMax = 10
)

// NextAction tells the caller what the collection loop decided.
type NextAction string

const (
	// NextQuestion means one more question was issued for delivery.
	NextQuestion NextAction = "next_question"
	// NextAwaitContinuation means the participant was asked whether to
	// keep answering questions.
	NextAwaitContinuation NextAction = "awaiting_continuation"
	// NextComplete means preference collection finished for the participant.
	NextComplete NextAction = "complete"
)

// Outcome is the collection loop's decision for one inbound event.
type Outcome struct {
	Next        NextAction
	Participant Participant
	// Question is set when Next is NextQuestion.
	Question *Question
}

// CollectorConfig wires the preference collection controller.
type CollectorConfig struct {
	Sessions     SessionStore
	Conversation ConversationStore
	Questions    QuestionPlanner
	Notifier     Notifier
	Clock        func() time.Time
	NewID        func() (string, error)
	// SoftLimit is the question count that triggers a continuation prompt;
	// zero selects the default of 5.
	SoftLimit int
	// HardMax is the question count that forces completion; zero selects
	// the default of 10.
	HardMax int
}

// Collector drives the question/response loop per participant: it decides
// whether to ask another question, pause for a continuation decision, or
// mark collection complete.
type Collector struct {
	sessions     SessionStore
	conversation ConversationStore
	questions    QuestionPlanner
	notifier     Notifier
	clock        func() time.Time
	newID        func() (string, error)
	softLimit    int
	hardMax      int
	locks        *keyedMutex
}

// NewCollector constructs the preference collection controller.
func NewCollector(cfg CollectorConfig) *Collector {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	if cfg.Questions == nil {
		cfg.Questions = DefaultCatalog()
	}
	if cfg.SoftLimit <= 0 {
		cfg.SoftLimit = defaultSoftLimit
	}
	if cfg.HardMax <= 0 {
		cfg.HardMax = defaultHardMax
	}
	if cfg.HardMax < cfg.SoftLimit {
		cfg.HardMax = cfg.SoftLimit
	}
	return &Collector{
		sessions:     cfg.Sessions,
		conversation: cfg.Conversation,
		questions:    cfg.Questions,
		notifier:     cfg.Notifier,
		clock:        cfg.Clock,
		newID:        cfg.NewID,
		softLimit:    cfg.SoftLimit,
		hardMax:      cfg.HardMax,
		locks:        newKeyedMutex(),
	}
}

// RecordCommMethod stores a participant's preferred channel from their
// free-text reply and issues the first question. Unclear replies default by
// the shape of the contact address.
func (c *Collector) RecordCommMethod(ctx context.Context, participantID string, reply string) (Outcome, error) {
	if c == nil || c.sessions == nil || c.conversation == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	unlock := c.locks.lock(participantID)
	defer unlock()

	participant, err := c.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return Outcome{}, err
	}
	if participant.State == CollectionStateComplete {
		return Outcome{}, ErrCollectionComplete
	}

	method := ParseCommMethod(reply)
	if method == "" {
		method = DefaultCommMethod(participant.Contact)
	}
	firstChoice := participant.CommMethod == ""
	participant.CommMethod = method
	if err := c.sessions.PutParticipant(ctx, participant); err != nil {
		return Outcome{}, err
	}

	if participant.State == CollectionStateAwaitingContinuation {
		return Outcome{Next: NextAwaitContinuation, Participant: participant}, nil
	}
	if !firstChoice {
		// Channel change mid-loop: re-deliver the open question if one
		// exists instead of minting another.
		pending, err := c.conversation.LatestUnansweredQuestion(ctx, participantID)
		if err == nil {
			return Outcome{Next: NextQuestion, Participant: participant, Question: &pending}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Outcome{}, err
		}
	}
	return c.askNext(ctx, participant)
}

// RecordResponse stores a participant's answer and decides the next step:
// another question, a continuation prompt, or completion. Duplicate
// submissions for the same question are rejected, not double-counted. Late
// responses from completed participants are stored without reopening the
// loop.
func (c *Collector) RecordResponse(ctx context.Context, participantID string, questionID string, text string) (Outcome, error) {
	if c == nil || c.sessions == nil || c.conversation == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	unlock := c.locks.lock(participantID)
	defer unlock()

	participant, err := c.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return Outcome{}, err
	}
	question, err := c.conversation.GetQuestion(ctx, questionID)
	if err != nil {
		return Outcome{}, err
	}
	if question.ParticipantID != participant.ID {
		return Outcome{}, ErrQuestionNotOwned
	}

	responseID, err := c.newID()
	if err != nil {
		return Outcome{}, fmt.Errorf("generate response id: %w", err)
	}
	response := Response{
		ID:            responseID,
		ParticipantID: participant.ID,
		QuestionID:    question.ID,
		Text:          text,
		CreatedAt:     c.now(),
	}
	if err := c.conversation.PutResponse(ctx, response); err != nil {
		return Outcome{}, err
	}

	if participant.State == CollectionStateComplete {
		return Outcome{Next: NextComplete, Participant: participant}, nil
	}

	return c.advance(ctx, participant)
}

// advance dispatches on the question count: force completion at the hard
// maximum, prompt for continuation at the soft limit, otherwise ask the
// next question.
func (c *Collector) advance(ctx context.Context, participant Participant) (Outcome, error) {
	asked, err := c.conversation.CountQuestions(ctx, participant.ID)
	if err != nil {
		return Outcome{}, err
	}
	switch {
	case asked >= c.hardMax:
		return c.complete(ctx, participant)
	case asked >= c.softLimit:
		return c.pause(ctx, participant)
	default:
		return c.askNext(ctx, participant)
	}
}

// reissue moves a participant's stalled loop forward when no question is
// open, applying the same limit checks as a recorded answer.
func (c *Collector) reissue(ctx context.Context, participantID string) (Outcome, error) {
	if c == nil || c.sessions == nil || c.conversation == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	unlock := c.locks.lock(participantID)
	defer unlock()

	participant, err := c.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return Outcome{}, err
	}
	if participant.State == CollectionStateComplete {
		return Outcome{Next: NextComplete, Participant: participant}, nil
	}
	return c.advance(ctx, participant)
}

// RecordContinuation applies a participant's explicit continue/stop
// decision. Continuing issues the next question; stopping completes the
// collection loop.
func (c *Collector) RecordContinuation(ctx context.Context, participantID string, keepGoing bool) (Outcome, error) {
	if c == nil || c.sessions == nil || c.conversation == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	unlock := c.locks.lock(participantID)
	defer unlock()

	participant, err := c.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return Outcome{}, err
	}
	if participant.State != CollectionStateAwaitingContinuation {
		return Outcome{}, ErrNotAwaitingContinuation
	}

	if !keepGoing {
		return c.complete(ctx, participant)
	}
	participant.State = CollectionStateCollecting
	if err := c.sessions.PutParticipant(ctx, participant); err != nil {
		return Outcome{}, err
	}
	return c.askNext(ctx, participant)
}

// MarkDone records an explicit "I'm done" signal regardless of where the
// participant sits in the loop. Idempotent for completed participants.
func (c *Collector) MarkDone(ctx context.Context, participantID string) (Outcome, error) {
	if c == nil || c.sessions == nil {
		return Outcome{}, ErrStoreNotConfigured
	}
	unlock := c.locks.lock(participantID)
	defer unlock()

	participant, err := c.sessions.GetParticipant(ctx, participantID)
	if err != nil {
		return Outcome{}, err
	}
	if participant.State == CollectionStateComplete {
		return Outcome{Next: NextComplete, Participant: participant}, nil
	}
	return c.complete(ctx, participant)
}

func (c *Collector) askNext(ctx context.Context, participant Participant) (Outcome, error) {
	history, err := c.conversation.ListExchanges(ctx, participant.ID)
	if err != nil {
		return Outcome{}, err
	}
	text, err := c.questions.NextQuestion(ctx, history)
	if err != nil {
		return Outcome{}, fmt.Errorf("plan next question: %w", err)
	}
	questionID, err := c.newID()
	if err != nil {
		return Outcome{}, fmt.Errorf("generate question id: %w", err)
	}
	question := Question{
		ID:            questionID,
		ParticipantID: participant.ID,
		Text:          text,
		CreatedAt:     c.now(),
	}
	if err := c.conversation.PutQuestion(ctx, question); err != nil {
		return Outcome{}, err
	}

	session, err := c.sessions.GetSession(ctx, participant.SessionID)
	if err != nil {
		return Outcome{}, err
	}
	notify(ctx, c.notifier, Message{
		Kind:          MessageQuestion,
		SessionID:     session.ID,
		EventName:     session.EventName,
		OrganizerName: session.OrganizerName,
		Recipient:     recipientFor(participant),
		ParticipantID: participant.ID,
		QuestionID:    question.ID,
		QuestionText:  question.Text,
	})
	return Outcome{Next: NextQuestion, Participant: participant, Question: &question}, nil
}

func (c *Collector) pause(ctx context.Context, participant Participant) (Outcome, error) {
	participant.State = CollectionStateAwaitingContinuation
	if err := c.sessions.PutParticipant(ctx, participant); err != nil {
		return Outcome{}, err
	}
	session, err := c.sessions.GetSession(ctx, participant.SessionID)
	if err != nil {
		return Outcome{}, err
	}
	notify(ctx, c.notifier, Message{
		Kind:          MessageContinuationPrompt,
		SessionID:     session.ID,
		EventName:     session.EventName,
		OrganizerName: session.OrganizerName,
		Recipient:     recipientFor(participant),
		ParticipantID: participant.ID,
	})
	return Outcome{Next: NextAwaitContinuation, Participant: participant}, nil
}

func (c *Collector) complete(ctx context.Context, participant Participant) (Outcome, error) {
	participant.State = CollectionStateComplete
	if err := c.sessions.PutParticipant(ctx, participant); err != nil {
		return Outcome{}, err
	}
	session, err := c.sessions.GetSession(ctx, participant.SessionID)
	if err != nil {
		return Outcome{}, err
	}
	notify(ctx, c.notifier, Message{
		Kind:          MessageCompletionThanks,
		SessionID:     session.ID,
		EventName:     session.EventName,
		OrganizerName: session.OrganizerName,
		Recipient:     recipientFor(participant),
		ParticipantID: participant.ID,
	})
	return Outcome{Next: NextComplete, Participant: participant}, nil
}

func (c *Collector) now() time.Time {
	if c.clock == nil {
		return time.Now().UTC()
	}
	return c.clock().UTC()
}

func recipientFor(participant Participant) Recipient {
	return Recipient{
		Name:    participant.Name,
		Contact: participant.Contact,
		Method:  participant.CommMethod,
	}
}
