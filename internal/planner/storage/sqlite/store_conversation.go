package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/rallypoint/internal/planner/storage"
)

// PutQuestion upserts one question row.
func (s *Store) PutQuestion(ctx context.Context, record storage.QuestionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeQuestionRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO questions (
		id, participant_id, text, created_at
	) VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		participant_id = excluded.participant_id,
		text = excluded.text,
		created_at = excluded.created_at
	`,
		normalized.ID,
		normalized.ParticipantID,
		normalized.Text,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put question: %w", err)
	}
	return nil
}

// GetQuestion loads one question row by id.
func (s *Store) GetQuestion(ctx context.Context, questionID string) (storage.QuestionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.QuestionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.QuestionRecord{}, fmt.Errorf("storage is not configured")
	}
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return storage.QuestionRecord{}, fmt.Errorf("question id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, participant_id, text, created_at
FROM questions
WHERE id = ?
`, questionID)
	record, err := scanQuestion(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.QuestionRecord{}, storage.ErrNotFound
		}
		return storage.QuestionRecord{}, fmt.Errorf("get question: %w", err)
	}
	return record, nil
}

// CountQuestionsByParticipant counts how many questions have been sent to
// one participant.
func (s *Store) CountQuestionsByParticipant(ctx context.Context, participantID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return 0, fmt.Errorf("participant id is required")
	}

	var count int
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM questions WHERE participant_id = ?
`, participantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// LatestUnansweredQuestion loads the most recent question for the
// participant that has no response row yet.
func (s *Store) LatestUnansweredQuestion(ctx context.Context, participantID string) (storage.QuestionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.QuestionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.QuestionRecord{}, fmt.Errorf("storage is not configured")
	}
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return storage.QuestionRecord{}, fmt.Errorf("participant id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT q.id, q.participant_id, q.text, q.created_at
FROM questions q
LEFT JOIN responses r ON r.question_id = q.id
WHERE q.participant_id = ? AND r.id IS NULL
ORDER BY q.created_at DESC, q.id DESC
LIMIT 1
`, participantID)
	record, err := scanQuestion(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.QuestionRecord{}, storage.ErrNotFound
		}
		return storage.QuestionRecord{}, fmt.Errorf("latest unanswered question: %w", err)
	}
	return record, nil
}

// PutResponse inserts one response row. A second response for the same
// question returns ErrConflict.
func (s *Store) PutResponse(ctx context.Context, record storage.ResponseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeResponseRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO responses (
		id, participant_id, question_id, text, created_at
	) VALUES (?, ?, ?, ?, ?)
	`,
		normalized.ID,
		normalized.ParticipantID,
		normalized.QuestionID,
		normalized.Text,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) || isForeignKeyConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put response: %w", err)
	}
	return nil
}

// ListExchangesByParticipant returns the participant's question history in
// creation order, each joined with its response when one exists.
func (s *Store) ListExchangesByParticipant(ctx context.Context, participantID string) ([]storage.ExchangeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, fmt.Errorf("participant id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	q.id, q.participant_id, q.text, q.created_at,
	r.id, r.participant_id, r.question_id, r.text, r.created_at
FROM questions q
LEFT JOIN responses r ON r.question_id = q.id
WHERE q.participant_id = ?
ORDER BY q.created_at ASC, q.id ASC
`, participantID)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	var results []storage.ExchangeRecord
	for rows.Next() {
		var exchange storage.ExchangeRecord
		var questionCreatedAt int64
		var responseID, responseParticipantID, responseQuestionID, responseText sql.NullString
		var responseCreatedAt sql.NullInt64
		if err := rows.Scan(
			&exchange.Question.ID,
			&exchange.Question.ParticipantID,
			&exchange.Question.Text,
			&questionCreatedAt,
			&responseID,
			&responseParticipantID,
			&responseQuestionID,
			&responseText,
			&responseCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan exchange row: %w", err)
		}
		exchange.Question.CreatedAt = fromMillis(questionCreatedAt)
		if responseID.Valid {
			exchange.Response = &storage.ResponseRecord{
				ID:            responseID.String,
				ParticipantID: responseParticipantID.String,
				QuestionID:    responseQuestionID.String,
				Text:          responseText.String,
				CreatedAt:     fromMillis(responseCreatedAt.Int64),
			}
		}
		results = append(results, exchange)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange rows: %w", err)
	}
	return results, nil
}

func normalizeQuestionRecord(record storage.QuestionRecord) (storage.QuestionRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.ParticipantID = strings.TrimSpace(record.ParticipantID)
	record.Text = strings.TrimSpace(record.Text)
	if record.ID == "" {
		return storage.QuestionRecord{}, fmt.Errorf("question id is required")
	}
	if record.ParticipantID == "" {
		return storage.QuestionRecord{}, fmt.Errorf("participant id is required")
	}
	if record.Text == "" {
		return storage.QuestionRecord{}, fmt.Errorf("question text is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.QuestionRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func normalizeResponseRecord(record storage.ResponseRecord) (storage.ResponseRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.ParticipantID = strings.TrimSpace(record.ParticipantID)
	record.QuestionID = strings.TrimSpace(record.QuestionID)
	record.Text = strings.TrimSpace(record.Text)
	if record.ID == "" {
		return storage.ResponseRecord{}, fmt.Errorf("response id is required")
	}
	if record.ParticipantID == "" {
		return storage.ResponseRecord{}, fmt.Errorf("participant id is required")
	}
	if record.QuestionID == "" {
		return storage.ResponseRecord{}, fmt.Errorf("question id is required")
	}
	if record.Text == "" {
		return storage.ResponseRecord{}, fmt.Errorf("response text is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.ResponseRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func scanQuestion(scan scanner) (storage.QuestionRecord, error) {
	var record storage.QuestionRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.ParticipantID,
		&record.Text,
		&createdAt,
	); err != nil {
		return storage.QuestionRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
