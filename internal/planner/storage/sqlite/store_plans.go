package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/storage"
)

// PutPlan upserts one plan row.
func (s *Store) PutPlan(ctx context.Context, record storage.PlanRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizePlanRecord(record)
	if err != nil {
		return err
	}

	var decidedAt any
	if normalized.DecidedAt != nil {
		decidedAt = toMillis(*normalized.DecidedAt)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO plans (
		id, session_id, payload_json, status, organizer_feedback, created_at, decided_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		session_id = excluded.session_id,
		payload_json = excluded.payload_json,
		status = excluded.status,
		organizer_feedback = excluded.organizer_feedback,
		created_at = excluded.created_at,
		decided_at = excluded.decided_at
	`,
		normalized.ID,
		normalized.SessionID,
		normalized.PayloadJSON,
		normalized.Status,
		normalized.OrganizerFeedback,
		toMillis(normalized.CreatedAt),
		decidedAt,
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put plan: %w", err)
	}
	return nil
}

// GetPlan loads one plan row by id.
func (s *Store) GetPlan(ctx context.Context, planID string) (storage.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PlanRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PlanRecord{}, fmt.Errorf("storage is not configured")
	}
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, payload_json, status, organizer_feedback, created_at, decided_at
FROM plans
WHERE id = ?
`, planID)
	record, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PlanRecord{}, storage.ErrNotFound
		}
		return storage.PlanRecord{}, fmt.Errorf("get plan: %w", err)
	}
	return record, nil
}

// LatestPlanBySession loads the most recently created plan for a session.
func (s *Store) LatestPlanBySession(ctx context.Context, sessionID string) (storage.PlanRecord, error) {
	return s.latestPlan(ctx, sessionID, "")
}

// LatestApprovedPlanBySession loads the most recently created approved plan
// for a session.
func (s *Store) LatestApprovedPlanBySession(ctx context.Context, sessionID string) (storage.PlanRecord, error) {
	return s.latestPlan(ctx, sessionID, "approved")
}

func (s *Store) latestPlan(ctx context.Context, sessionID string, status string) (storage.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PlanRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PlanRecord{}, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.PlanRecord{}, fmt.Errorf("session id is required")
	}

	query := `
SELECT id, session_id, payload_json, status, organizer_feedback, created_at, decided_at
FROM plans
WHERE session_id = ?
`
	args := []any{sessionID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += `
ORDER BY created_at DESC, id DESC
LIMIT 1
`
	row := s.sqlDB.QueryRowContext(ctx, query, args...)
	record, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PlanRecord{}, storage.ErrNotFound
		}
		return storage.PlanRecord{}, fmt.Errorf("latest plan: %w", err)
	}
	return record, nil
}

// MarkPlanDecided records the organizer's verdict on a pending plan. The
// update applies only while the plan is pending; otherwise ErrConflict.
func (s *Store) MarkPlanDecided(ctx context.Context, planID string, status string, organizerFeedback string, decidedAt time.Time) (storage.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PlanRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PlanRecord{}, fmt.Errorf("storage is not configured")
	}
	planID = strings.TrimSpace(planID)
	status = strings.TrimSpace(status)
	organizerFeedback = strings.TrimSpace(organizerFeedback)
	if planID == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan id is required")
	}
	if status == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan status is required")
	}
	if decidedAt.IsZero() {
		return storage.PlanRecord{}, fmt.Errorf("decided_at is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
	UPDATE plans
	SET status = ?, organizer_feedback = ?, decided_at = ?
	WHERE id = ? AND status = 'pending'
	`, status, organizerFeedback, toMillis(decidedAt), planID)
	if err != nil {
		return storage.PlanRecord{}, fmt.Errorf("mark plan decided: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.PlanRecord{}, fmt.Errorf("mark plan decided rows affected: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.GetPlan(ctx, planID); getErr != nil {
			return storage.PlanRecord{}, getErr
		}
		return storage.PlanRecord{}, storage.ErrConflict
	}
	return s.GetPlan(ctx, planID)
}

// PutFeedback inserts one participant feedback row.
func (s *Store) PutFeedback(ctx context.Context, record storage.FeedbackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeFeedbackRecord(record)
	if err != nil {
		return err
	}

	accepted := 0
	if normalized.Accepted {
		accepted = 1
	}
	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO plan_feedback (
		id, participant_id, plan_id, accepted, feedback, created_at
	) VALUES (?, ?, ?, ?, ?, ?)
	`,
		normalized.ID,
		normalized.ParticipantID,
		normalized.PlanID,
		accepted,
		normalized.Feedback,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) || isForeignKeyConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put feedback: %w", err)
	}
	return nil
}

// ListFeedbackByPlan lists one plan's feedback rows in creation order,
// joined with each participant's display name.
func (s *Store) ListFeedbackByPlan(ctx context.Context, planID string) ([]storage.FeedbackWithName, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, fmt.Errorf("plan id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT f.id, f.participant_id, f.plan_id, f.accepted, f.feedback, f.created_at, p.name
FROM plan_feedback f
JOIN participants p ON p.id = f.participant_id
WHERE f.plan_id = ?
ORDER BY f.created_at ASC, f.id ASC
`, planID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var results []storage.FeedbackWithName
	for rows.Next() {
		var entry storage.FeedbackWithName
		var accepted int
		var createdAt int64
		if err := rows.Scan(
			&entry.ID,
			&entry.ParticipantID,
			&entry.PlanID,
			&accepted,
			&entry.Feedback,
			&createdAt,
			&entry.ParticipantName,
		); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		entry.Accepted = accepted != 0
		entry.CreatedAt = fromMillis(createdAt)
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}
	return results, nil
}

func normalizePlanRecord(record storage.PlanRecord) (storage.PlanRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.SessionID = strings.TrimSpace(record.SessionID)
	record.PayloadJSON = strings.TrimSpace(record.PayloadJSON)
	record.Status = strings.TrimSpace(record.Status)
	record.OrganizerFeedback = strings.TrimSpace(record.OrganizerFeedback)
	if record.ID == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan id is required")
	}
	if record.SessionID == "" {
		return storage.PlanRecord{}, fmt.Errorf("session id is required")
	}
	if record.PayloadJSON == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan payload is required")
	}
	if record.Status == "" {
		return storage.PlanRecord{}, fmt.Errorf("plan status is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.PlanRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	if record.DecidedAt != nil {
		decided := record.DecidedAt.UTC()
		record.DecidedAt = &decided
	}
	return record, nil
}

func normalizeFeedbackRecord(record storage.FeedbackRecord) (storage.FeedbackRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.ParticipantID = strings.TrimSpace(record.ParticipantID)
	record.PlanID = strings.TrimSpace(record.PlanID)
	record.Feedback = strings.TrimSpace(record.Feedback)
	if record.ID == "" {
		return storage.FeedbackRecord{}, fmt.Errorf("feedback id is required")
	}
	if record.ParticipantID == "" {
		return storage.FeedbackRecord{}, fmt.Errorf("participant id is required")
	}
	if record.PlanID == "" {
		return storage.FeedbackRecord{}, fmt.Errorf("plan id is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.FeedbackRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func scanPlan(scan scanner) (storage.PlanRecord, error) {
	var record storage.PlanRecord
	var createdAt int64
	var decidedAt sql.NullInt64
	if err := scan(
		&record.ID,
		&record.SessionID,
		&record.PayloadJSON,
		&record.Status,
		&record.OrganizerFeedback,
		&createdAt,
		&decidedAt,
	); err != nil {
		return storage.PlanRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	if decidedAt.Valid {
		decided := fromMillis(decidedAt.Int64)
		record.DecidedAt = &decided
	}
	return record, nil
}
