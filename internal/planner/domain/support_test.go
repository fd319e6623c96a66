package domain

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// tickingClock returns a strictly increasing time so creation order and
// timestamp order agree in tests.
func tickingClock() func() time.Time {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

// sequentialIDs yields id-1, id-2, ...
func sequentialIDs() func() (string, error) {
	var mu sync.Mutex
	next := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next), nil
	}
}

// captureNotifier records every message for assertions.
type captureNotifier struct {
	mu       sync.Mutex
	messages []Message
}

func (n *captureNotifier) Notify(_ context.Context, message Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *captureNotifier) byKind(kind MessageKind) []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	var matches []Message
	for _, message := range n.messages {
		if message.Kind == kind {
			matches = append(matches, message)
		}
	}
	return matches
}

func (n *captureNotifier) last() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return Message{}, false
	}
	return n.messages[len(n.messages)-1], true
}

// fakeStore is an in-memory Store honoring the same contracts as the
// SQLite-backed implementation.
type fakeStore struct {
	mu           sync.Mutex
	sessions     map[string]Session
	participants map[string]Participant
	questions    map[string]Question
	responses    map[string]Response
	plans        map[string]Plan
	feedback     []PlanFeedback
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:     make(map[string]Session),
		participants: make(map[string]Participant),
		questions:    make(map[string]Question),
		responses:    make(map[string]Response),
		plans:        make(map[string]Plan),
	}
}

func (s *fakeStore) PutSession(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeStore) GetSession(_ context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

func (s *fakeStore) PutParticipant(_ context.Context, participant Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[participant.ID] = participant
	return nil
}

func (s *fakeStore) GetParticipant(_ context.Context, participantID string) (Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	participant, ok := s.participants[participantID]
	if !ok {
		return Participant{}, ErrNotFound
	}
	return participant, nil
}

func (s *fakeStore) ListParticipants(_ context.Context, sessionID string) ([]Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []Participant
	for _, participant := range s.participants {
		if participant.SessionID == sessionID {
			results = append(results, participant)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

func (s *fakeStore) FindParticipantByContact(_ context.Context, contact string) (Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *Participant
	for _, participant := range s.participants {
		participant := participant
		if participant.Contact != contact {
			continue
		}
		if found == nil || participant.CreatedAt.After(found.CreatedAt) ||
			(participant.CreatedAt.Equal(found.CreatedAt) && participant.ID > found.ID) {
			found = &participant
		}
	}
	if found == nil {
		return Participant{}, ErrNotFound
	}
	return *found, nil
}

func (s *fakeStore) PutQuestion(_ context.Context, question Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = question
	return nil
}

func (s *fakeStore) GetQuestion(_ context.Context, questionID string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[questionID]
	if !ok {
		return Question{}, ErrNotFound
	}
	return question, nil
}

func (s *fakeStore) CountQuestions(_ context.Context, participantID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, question := range s.questions {
		if question.ParticipantID == participantID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) LatestUnansweredQuestion(_ context.Context, participantID string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *Question
	for _, question := range s.questions {
		question := question
		if question.ParticipantID != participantID {
			continue
		}
		if _, answered := s.responses[responseKey(participantID, question.ID)]; answered {
			continue
		}
		if found == nil || question.CreatedAt.After(found.CreatedAt) ||
			(question.CreatedAt.Equal(found.CreatedAt) && question.ID > found.ID) {
			found = &question
		}
	}
	if found == nil {
		return Question{}, ErrNotFound
	}
	return *found, nil
}

func (s *fakeStore) PutResponse(_ context.Context, response Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := responseKey(response.ParticipantID, response.QuestionID)
	if _, exists := s.responses[key]; exists {
		return ErrQuestionAlreadyAnswered
	}
	s.responses[key] = response
	return nil
}

func (s *fakeStore) ListExchanges(_ context.Context, participantID string) ([]Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var questions []Question
	for _, question := range s.questions {
		if question.ParticipantID == participantID {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		if !questions[i].CreatedAt.Equal(questions[j].CreatedAt) {
			return questions[i].CreatedAt.Before(questions[j].CreatedAt)
		}
		return questions[i].ID < questions[j].ID
	})
	exchanges := make([]Exchange, 0, len(questions))
	for _, question := range questions {
		exchange := Exchange{Question: question}
		if response, ok := s.responses[responseKey(participantID, question.ID)]; ok {
			response := response
			exchange.Response = &response
		}
		exchanges = append(exchanges, exchange)
	}
	return exchanges, nil
}

func (s *fakeStore) PutPlan(_ context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	return nil
}

func (s *fakeStore) GetPlan(_ context.Context, planID string) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return Plan{}, ErrNotFound
	}
	return plan, nil
}

func (s *fakeStore) LatestPlan(_ context.Context, sessionID string) (Plan, error) {
	return s.latestPlan(sessionID, "")
}

func (s *fakeStore) LatestApprovedPlan(_ context.Context, sessionID string) (Plan, error) {
	return s.latestPlan(sessionID, PlanStatusApproved)
}

func (s *fakeStore) latestPlan(sessionID string, status PlanStatus) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *Plan
	for _, plan := range s.plans {
		plan := plan
		if plan.SessionID != sessionID {
			continue
		}
		if status != "" && plan.Status != status {
			continue
		}
		if found == nil || plan.CreatedAt.After(found.CreatedAt) ||
			(plan.CreatedAt.Equal(found.CreatedAt) && plan.ID > found.ID) {
			found = &plan
		}
	}
	if found == nil {
		return Plan{}, ErrNotFound
	}
	return *found, nil
}

func (s *fakeStore) MarkPlanDecided(_ context.Context, planID string, status PlanStatus, organizerFeedback string, decidedAt time.Time) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return Plan{}, ErrNotFound
	}
	if plan.Status != PlanStatusPending {
		return Plan{}, ErrPlanAlreadyDecided
	}
	plan.Status = status
	plan.OrganizerFeedback = organizerFeedback
	plan.DecidedAt = &decidedAt
	s.plans[planID] = plan
	return plan, nil
}

func (s *fakeStore) PutFeedback(_ context.Context, feedback PlanFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, feedback)
	return nil
}

func (s *fakeStore) ListFeedback(_ context.Context, planID string) ([]FeedbackEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []FeedbackEntry
	for _, item := range s.feedback {
		if item.PlanID != planID {
			continue
		}
		name := ""
		if participant, ok := s.participants[item.ParticipantID]; ok {
			name = participant.Name
		}
		entries = append(entries, FeedbackEntry{PlanFeedback: item, ParticipantName: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func responseKey(participantID, questionID string) string {
	return participantID + "|" + questionID
}

// fixture seeds one active session with participants and returns the
// wired aggregate pieces most tests need.
type fixture struct {
	store        *fakeStore
	notifier     *captureNotifier
	planner      *Planner
	session      Session
	participants []Participant
}

func newFixture(t interface{ Fatalf(string, ...any) }, contacts ...string) *fixture {
	store := newFakeStore()
	notifier := &captureNotifier{}
	planner := New(Config{
		Store:    store,
		Notifier: notifier,
		Clock:    tickingClock(),
		NewID:    sequentialIDs(),
		Synthesizer: synthesizerFunc(func(context.Context, SynthesisContext) (string, error) {
			return `{"event_name":"Lake Trip"}`, nil
		}),
	})

	invited := make([]InvitedParticipant, 0, len(contacts))
	for i, contact := range contacts {
		invited = append(invited, InvitedParticipant{
			Name:    fmt.Sprintf("Guest %d", i+1),
			Contact: contact,
		})
	}
	session, participants, err := planner.CreateSession(context.Background(), CreateSessionInput{
		OrganizerName:    "Dana",
		OrganizerContact: "dana@example.com",
		EventName:        "Lake Trip",
		Participants:     invited,
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	return &fixture{
		store:        store,
		notifier:     notifier,
		planner:      planner,
		session:      session,
		participants: participants,
	}
}

// synthesizerFunc adapts a function to PlanSynthesizer.
type synthesizerFunc func(ctx context.Context, input SynthesisContext) (string, error)

func (f synthesizerFunc) Synthesize(ctx context.Context, input SynthesisContext) (string, error) {
	return f(ctx, input)
}
