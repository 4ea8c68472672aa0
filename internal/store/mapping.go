package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/action"
)

// Mapping represents a finger-count-to-action binding stored in the database.
type Mapping struct {
	FingerCount int
	Kind        action.Kind
	Parameter   string
	UpdatedAt   time.Time
}

// Descriptor returns the mapping's action descriptor.
func (m *Mapping) Descriptor() action.Descriptor {
	return action.Descriptor{Kind: m.Kind, Parameter: m.Parameter}
}

// MappingRepository provides CRUD operations for mappings.
type MappingRepository struct {
	db *sql.DB
}

// Mappings returns the mapping repository for this store.
func (s *Store) Mappings() *MappingRepository {
	return &MappingRepository{db: s.db}
}

// Upsert inserts or replaces the mapping for a finger count.
func (r *MappingRepository) Upsert(count int, desc action.Descriptor) error {
	_, err := r.db.Exec(
		`INSERT INTO mappings (finger_count, kind, parameter, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(finger_count) DO UPDATE SET
		   kind = excluded.kind,
		   parameter = excluded.parameter,
		   updated_at = excluded.updated_at`,
		count, string(desc.Kind), desc.Parameter, time.Now(),
	)
	return err
}

// Get retrieves the mapping for a finger count.
func (r *MappingRepository) Get(count int) (*Mapping, error) {
	m := &Mapping{}
	var kind string

	err := r.db.QueryRow(
		`SELECT finger_count, kind, parameter, updated_at
		 FROM mappings WHERE finger_count = ?`,
		count,
	).Scan(&m.FingerCount, &kind, &m.Parameter, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Kind = action.Kind(kind)
	return m, nil
}

// List retrieves all mappings ordered by finger count.
func (r *MappingRepository) List() ([]*Mapping, error) {
	rows, err := r.db.Query(
		`SELECT finger_count, kind, parameter, updated_at
		 FROM mappings ORDER BY finger_count`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		m := &Mapping{}
		var kind string

		if err := rows.Scan(&m.FingerCount, &kind, &m.Parameter, &m.UpdatedAt); err != nil {
			return nil, err
		}

		m.Kind = action.Kind(kind)
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mappings, nil
}

// Delete removes the mapping for a finger count.
func (r *MappingRepository) Delete(count int) error {
	result, err := r.db.Exec(`DELETE FROM mappings WHERE finger_count = ?`, count)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Seed inserts the given mappings for any finger count that has no stored
// mapping yet. Existing rows are left untouched.
func (r *MappingRepository) Seed(defaults map[int]action.Descriptor) error {
	for count, desc := range defaults {
		_, err := r.db.Exec(
			`INSERT INTO mappings (finger_count, kind, parameter, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(finger_count) DO NOTHING`,
			count, string(desc.Kind), desc.Parameter, time.Now(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
