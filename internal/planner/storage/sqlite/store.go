// Package sqlite provides SQLite-backed persistence for planning state.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/storage"
	"github.com/louisbranch/rallypoint/internal/planner/storage/sqlite/migrations"
	"github.com/louisbranch/rallypoint/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for planner state.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a planner SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func ensureForeignKeysEnabled(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("sqlite db is required")
	}
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// PutSession upserts one session row.
func (s *Store) PutSession(ctx context.Context, record storage.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeSessionRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO sessions (
		id, organizer_name, organizer_contact, event_name, status, created_at
	) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		organizer_name = excluded.organizer_name,
		organizer_contact = excluded.organizer_contact,
		event_name = excluded.event_name,
		status = excluded.status,
		created_at = excluded.created_at
	`,
		normalized.ID,
		normalized.OrganizerName,
		normalized.OrganizerContact,
		normalized.EventName,
		normalized.Status,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads one session row by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SessionRecord{}, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.SessionRecord{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, organizer_name, organizer_contact, event_name, status, created_at
FROM sessions
WHERE id = ?
`, sessionID)
	record, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, fmt.Errorf("get session: %w", err)
	}
	return record, nil
}

// PutParticipant upserts one participant row.
func (s *Store) PutParticipant(ctx context.Context, record storage.ParticipantRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeParticipantRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO participants (
		id, session_id, name, contact, comm_method, state, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		session_id = excluded.session_id,
		name = excluded.name,
		contact = excluded.contact,
		comm_method = excluded.comm_method,
		state = excluded.state,
		created_at = excluded.created_at
	`,
		normalized.ID,
		normalized.SessionID,
		normalized.Name,
		normalized.Contact,
		normalized.CommMethod,
		normalized.State,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put participant: %w", err)
	}
	return nil
}

// GetParticipant loads one participant row by id.
func (s *Store) GetParticipant(ctx context.Context, participantID string) (storage.ParticipantRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ParticipantRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ParticipantRecord{}, fmt.Errorf("storage is not configured")
	}
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("participant id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, contact, comm_method, state, created_at
FROM participants
WHERE id = ?
`, participantID)
	record, err := scanParticipant(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ParticipantRecord{}, storage.ErrNotFound
		}
		return storage.ParticipantRecord{}, fmt.Errorf("get participant: %w", err)
	}
	return record, nil
}

// ListParticipantsBySession lists one session's roster in creation order.
func (s *Store) ListParticipantsBySession(ctx context.Context, sessionID string) ([]storage.ParticipantRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, session_id, name, contact, comm_method, state, created_at
FROM participants
WHERE session_id = ?
ORDER BY created_at ASC, id ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var results []storage.ParticipantRecord
	for rows.Next() {
		record, scanErr := scanParticipant(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan participant row: %w", scanErr)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant rows: %w", err)
	}
	return results, nil
}

// FindParticipantByContact loads the most recently created participant
// with the given contact address.
func (s *Store) FindParticipantByContact(ctx context.Context, contact string) (storage.ParticipantRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ParticipantRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ParticipantRecord{}, fmt.Errorf("storage is not configured")
	}
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("contact is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, session_id, name, contact, comm_method, state, created_at
FROM participants
WHERE contact = ?
ORDER BY created_at DESC, id DESC
LIMIT 1
`, contact)
	record, err := scanParticipant(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ParticipantRecord{}, storage.ErrNotFound
		}
		return storage.ParticipantRecord{}, fmt.Errorf("find participant by contact: %w", err)
	}
	return record, nil
}

type scanner func(dest ...any) error

func normalizeSessionRecord(record storage.SessionRecord) (storage.SessionRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.OrganizerName = strings.TrimSpace(record.OrganizerName)
	record.OrganizerContact = strings.TrimSpace(record.OrganizerContact)
	record.EventName = strings.TrimSpace(record.EventName)
	record.Status = strings.TrimSpace(record.Status)
	if record.ID == "" {
		return storage.SessionRecord{}, fmt.Errorf("session id is required")
	}
	if record.OrganizerName == "" {
		return storage.SessionRecord{}, fmt.Errorf("organizer name is required")
	}
	if record.OrganizerContact == "" {
		return storage.SessionRecord{}, fmt.Errorf("organizer contact is required")
	}
	if record.EventName == "" {
		return storage.SessionRecord{}, fmt.Errorf("event name is required")
	}
	if record.Status == "" {
		return storage.SessionRecord{}, fmt.Errorf("session status is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.SessionRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func normalizeParticipantRecord(record storage.ParticipantRecord) (storage.ParticipantRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.SessionID = strings.TrimSpace(record.SessionID)
	record.Name = strings.TrimSpace(record.Name)
	record.Contact = strings.TrimSpace(record.Contact)
	record.CommMethod = strings.TrimSpace(record.CommMethod)
	record.State = strings.TrimSpace(record.State)
	if record.ID == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("participant id is required")
	}
	if record.SessionID == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("session id is required")
	}
	if record.Name == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("participant name is required")
	}
	if record.Contact == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("participant contact is required")
	}
	if record.State == "" {
		return storage.ParticipantRecord{}, fmt.Errorf("participant state is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.ParticipantRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func scanSession(scan scanner) (storage.SessionRecord, error) {
	var record storage.SessionRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.OrganizerName,
		&record.OrganizerContact,
		&record.EventName,
		&record.Status,
		&createdAt,
	); err != nil {
		return storage.SessionRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func scanParticipant(scan scanner) (storage.ParticipantRecord, error) {
	var record storage.ParticipantRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.SessionID,
		&record.Name,
		&record.Contact,
		&record.CommMethod,
		&record.State,
		&createdAt,
	); err != nil {
		return storage.ParticipantRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "unique constraint failed")
}

func isForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "foreign key constraint failed")
}
