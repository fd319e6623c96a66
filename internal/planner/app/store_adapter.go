package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
	"github.com/louisbranch/rallypoint/internal/planner/storage"
)

// storageStore is the persistence surface the adapter sits on.
type storageStore interface {
	storage.SessionStore
	storage.ConversationStore
	storage.PlanStore
}

// storeAdapter implements domain.Store over the flat storage contracts,
// translating records and error sentinels in both directions.
type storeAdapter struct {
	store storageStore
}

func newStoreAdapter(store storageStore) *storeAdapter {
	return &storeAdapter{store: store}
}

func wrapStorageErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
}

func (a *storeAdapter) PutSession(ctx context.Context, session domain.Session) error {
	err := a.store.PutSession(ctx, storage.SessionRecord{
		ID:               session.ID,
		OrganizerName:    session.OrganizerName,
		OrganizerContact: session.OrganizerContact,
		EventName:        session.EventName,
		Status:           string(session.Status),
		CreatedAt:        session.CreatedAt,
	})
	if err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	record, err := a.store.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, wrapStorageErr(err)
	}
	return sessionFromRecord(record), nil
}

func (a *storeAdapter) PutParticipant(ctx context.Context, participant domain.Participant) error {
	err := a.store.PutParticipant(ctx, storage.ParticipantRecord{
		ID:         participant.ID,
		SessionID:  participant.SessionID,
		Name:       participant.Name,
		Contact:    participant.Contact,
		CommMethod: string(participant.CommMethod),
		State:      string(participant.State),
		CreatedAt:  participant.CreatedAt,
	})
	if err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) GetParticipant(ctx context.Context, participantID string) (domain.Participant, error) {
	record, err := a.store.GetParticipant(ctx, participantID)
	if err != nil {
		return domain.Participant{}, wrapStorageErr(err)
	}
	return participantFromRecord(record), nil
}

func (a *storeAdapter) ListParticipants(ctx context.Context, sessionID string) ([]domain.Participant, error) {
	records, err := a.store.ListParticipantsBySession(ctx, sessionID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	participants := make([]domain.Participant, 0, len(records))
	for _, record := range records {
		participants = append(participants, participantFromRecord(record))
	}
	return participants, nil
}

func (a *storeAdapter) FindParticipantByContact(ctx context.Context, contact string) (domain.Participant, error) {
	record, err := a.store.FindParticipantByContact(ctx, contact)
	if err != nil {
		return domain.Participant{}, wrapStorageErr(err)
	}
	return participantFromRecord(record), nil
}

func (a *storeAdapter) PutQuestion(ctx context.Context, question domain.Question) error {
	err := a.store.PutQuestion(ctx, storage.QuestionRecord{
		ID:            question.ID,
		ParticipantID: question.ParticipantID,
		Text:          question.Text,
		CreatedAt:     question.CreatedAt,
	})
	if err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	record, err := a.store.GetQuestion(ctx, questionID)
	if err != nil {
		return domain.Question{}, wrapStorageErr(err)
	}
	return questionFromRecord(record), nil
}

func (a *storeAdapter) CountQuestions(ctx context.Context, participantID string) (int, error) {
	count, err := a.store.CountQuestionsByParticipant(ctx, participantID)
	if err != nil {
		return 0, wrapStorageErr(err)
	}
	return count, nil
}

func (a *storeAdapter) LatestUnansweredQuestion(ctx context.Context, participantID string) (domain.Question, error) {
	record, err := a.store.LatestUnansweredQuestion(ctx, participantID)
	if err != nil {
		return domain.Question{}, wrapStorageErr(err)
	}
	return questionFromRecord(record), nil
}

func (a *storeAdapter) PutResponse(ctx context.Context, response domain.Response) error {
	err := a.store.PutResponse(ctx, storage.ResponseRecord{
		ID:            response.ID,
		ParticipantID: response.ParticipantID,
		QuestionID:    response.QuestionID,
		Text:          response.Text,
		CreatedAt:     response.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.ErrQuestionAlreadyAnswered
		}
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) ListExchanges(ctx context.Context, participantID string) ([]domain.Exchange, error) {
	records, err := a.store.ListExchangesByParticipant(ctx, participantID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	exchanges := make([]domain.Exchange, 0, len(records))
	for _, record := range records {
		exchange := domain.Exchange{Question: questionFromRecord(record.Question)}
		if record.Response != nil {
			response := responseFromRecord(*record.Response)
			exchange.Response = &response
		}
		exchanges = append(exchanges, exchange)
	}
	return exchanges, nil
}

func (a *storeAdapter) PutPlan(ctx context.Context, plan domain.Plan) error {
	err := a.store.PutPlan(ctx, storage.PlanRecord{
		ID:                plan.ID,
		SessionID:         plan.SessionID,
		PayloadJSON:       plan.PayloadJSON,
		Status:            string(plan.Status),
		OrganizerFeedback: plan.OrganizerFeedback,
		CreatedAt:         plan.CreatedAt,
		DecidedAt:         plan.DecidedAt,
	})
	if err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) GetPlan(ctx context.Context, planID string) (domain.Plan, error) {
	record, err := a.store.GetPlan(ctx, planID)
	if err != nil {
		return domain.Plan{}, wrapStorageErr(err)
	}
	return planFromRecord(record), nil
}

func (a *storeAdapter) LatestPlan(ctx context.Context, sessionID string) (domain.Plan, error) {
	record, err := a.store.LatestPlanBySession(ctx, sessionID)
	if err != nil {
		return domain.Plan{}, wrapStorageErr(err)
	}
	return planFromRecord(record), nil
}

func (a *storeAdapter) LatestApprovedPlan(ctx context.Context, sessionID string) (domain.Plan, error) {
	record, err := a.store.LatestApprovedPlanBySession(ctx, sessionID)
	if err != nil {
		return domain.Plan{}, wrapStorageErr(err)
	}
	return planFromRecord(record), nil
}

func (a *storeAdapter) MarkPlanDecided(ctx context.Context, planID string, status domain.PlanStatus, organizerFeedback string, decidedAt time.Time) (domain.Plan, error) {
	record, err := a.store.MarkPlanDecided(ctx, planID, string(status), organizerFeedback, decidedAt)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.Plan{}, domain.ErrPlanAlreadyDecided
		}
		return domain.Plan{}, wrapStorageErr(err)
	}
	return planFromRecord(record), nil
}

func (a *storeAdapter) PutFeedback(ctx context.Context, feedback domain.PlanFeedback) error {
	err := a.store.PutFeedback(ctx, storage.FeedbackRecord{
		ID:            feedback.ID,
		ParticipantID: feedback.ParticipantID,
		PlanID:        feedback.PlanID,
		Accepted:      feedback.Accepted,
		Feedback:      feedback.Feedback,
		CreatedAt:     feedback.CreatedAt,
	})
	if err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (a *storeAdapter) ListFeedback(ctx context.Context, planID string) ([]domain.FeedbackEntry, error) {
	records, err := a.store.ListFeedbackByPlan(ctx, planID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	entries := make([]domain.FeedbackEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, domain.FeedbackEntry{
			PlanFeedback: domain.PlanFeedback{
				ID:            record.ID,
				ParticipantID: record.ParticipantID,
				PlanID:        record.PlanID,
				Accepted:      record.Accepted,
				Feedback:      record.Feedback,
				CreatedAt:     record.CreatedAt,
			},
			ParticipantName: record.ParticipantName,
		})
	}
	return entries, nil
}

func sessionFromRecord(record storage.SessionRecord) domain.Session {
	return domain.Session{
		ID:               record.ID,
		OrganizerName:    record.OrganizerName,
		OrganizerContact: record.OrganizerContact,
		EventName:        record.EventName,
		Status:           domain.SessionStatus(record.Status),
		CreatedAt:        record.CreatedAt,
	}
}

func participantFromRecord(record storage.ParticipantRecord) domain.Participant {
	return domain.Participant{
		ID:         record.ID,
		SessionID:  record.SessionID,
		Name:       record.Name,
		Contact:    record.Contact,
		CommMethod: domain.CommMethod(record.CommMethod),
		State:      domain.CollectionState(record.State),
		CreatedAt:  record.CreatedAt,
	}
}

func questionFromRecord(record storage.QuestionRecord) domain.Question {
	return domain.Question{
		ID:            record.ID,
		ParticipantID: record.ParticipantID,
		Text:          record.Text,
		CreatedAt:     record.CreatedAt,
	}
}

func responseFromRecord(record storage.ResponseRecord) domain.Response {
	return domain.Response{
		ID:            record.ID,
		ParticipantID: record.ParticipantID,
		QuestionID:    record.QuestionID,
		Text:          record.Text,
		CreatedAt:     record.CreatedAt,
	}
}

func planFromRecord(record storage.PlanRecord) domain.Plan {
	return domain.Plan{
		ID:                record.ID,
		SessionID:         record.SessionID,
		PayloadJSON:       record.PayloadJSON,
		Status:            domain.PlanStatus(record.Status),
		OrganizerFeedback: record.OrganizerFeedback,
		CreatedAt:         record.CreatedAt,
		DecidedAt:         record.DecidedAt,
	}
}
