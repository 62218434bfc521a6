package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// Question IDs are unique within a topic only.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS topics (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS topic_questions (
			topic TEXT NOT NULL,
			question_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			option_count INTEGER NOT NULL,
			explanation TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL,
			PRIMARY KEY (topic, question_id),
			UNIQUE (topic, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_topics_position ON topics(position);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
