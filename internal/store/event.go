package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/action"
)

// TriggerEvent records one emitted gesture in the audit log.
type TriggerEvent struct {
	ID          string
	FingerCount int
	Kind        action.Kind
	Parameter   string
	Acted       bool
	CreatedAt   time.Time
}

// EventRepository provides access to the trigger log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the trigger-event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert records a trigger event, assigning it an ID and timestamp.
func (r *EventRepository) Insert(e *TriggerEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	acted := 0
	if e.Acted {
		acted = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO trigger_events (id, finger_count, kind, parameter, acted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.FingerCount, string(e.Kind), e.Parameter, acted, e.CreatedAt,
	)
	return err
}

// ListRecent retrieves the most recent trigger events, newest first.
func (r *EventRepository) ListRecent(limit int) ([]*TriggerEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, finger_count, kind, parameter, acted, created_at
		 FROM trigger_events ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*TriggerEvent
	for rows.Next() {
		e := &TriggerEvent{}
		var kind string
		var acted int

		if err := rows.Scan(&e.ID, &e.FingerCount, &kind, &e.Parameter, &acted, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Kind = action.Kind(kind)
		e.Acted = acted != 0
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune deletes trigger events older than the given cutoff and returns how
// many were removed.
func (r *EventRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM trigger_events WHERE created_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
