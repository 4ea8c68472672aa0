package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Mappings table - binds a finger count to an action
		`CREATE TABLE IF NOT EXISTS mappings (
			finger_count INTEGER PRIMARY KEY CHECK(finger_count BETWEEN 0 AND 5),
			kind TEXT NOT NULL,
			parameter TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Trigger events table - audit log of emitted gestures
		`CREATE TABLE IF NOT EXISTS trigger_events (
			id TEXT PRIMARY KEY,
			finger_count INTEGER NOT NULL,
			kind TEXT NOT NULL,
			parameter TEXT NOT NULL DEFAULT '',
			acted INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trigger_events_created_at ON trigger_events(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
