package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"certquiz/internal/bank"
)

// SaveTopic replaces the question list of topic. New topics are appended
// after the existing ones; a saved topic keeps its position.
func (s *SQLiteStore) SaveTopic(ctx context.Context, topic, source string, questions []bank.Question) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("topic name is required")
	}
	if strings.TrimSpace(source) == "" {
		source = "manual"
	}

	for idx, question := range questions {
		if err := bank.Validate(question); err != nil {
			return fmt.Errorf("topic %q question %d: %w", topic, idx+1, err)
		}
	}

	now := time.Now().UTC().UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO topics (name, position, created_at_unix)
		 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM topics), ?)
		 ON CONFLICT(name) DO NOTHING`,
		topic,
		now,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM topic_questions WHERE topic = ?`, topic); err != nil {
		return err
	}

	for idx := range questions {
		question := questions[idx]
		if question.ID == "" {
			question.ID = bank.MakeQuestionID(question)
		}

		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO topic_questions (topic, question_id, position, prompt, options_json, correct_index, option_count, explanation, category, source, created_at_unix)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			topic,
			question.ID,
			idx,
			question.Prompt,
			string(optionsJSON),
			question.CorrectIndex,
			len(question.Options),
			question.Explanation,
			question.Category,
			source,
			now,
		); err != nil {
			return fmt.Errorf("topic %q question %d: %w", topic, idx+1, err)
		}
	}

	return tx.Commit()
}

// SaveBank stores every topic of b in order.
func (s *SQLiteStore) SaveBank(ctx context.Context, b *bank.Bank, source string) error {
	for _, topic := range b.Topics() {
		questions, _ := b.Questions(topic)
		if err := s.SaveTopic(ctx, topic, source, questions); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) TopicExists(ctx context.Context, topic string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM topics WHERE name = ? LIMIT 1`,
		topic,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) ListTopics(ctx context.Context) ([]bank.TopicSummary, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT t.name, COUNT(tq.question_id)
		 FROM topics t
		 LEFT JOIN topic_questions tq ON tq.topic = t.name
		 GROUP BY t.name, t.position
		 ORDER BY t.position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := make([]bank.TopicSummary, 0)
	for rows.Next() {
		var item bank.TopicSummary
		if err := rows.Scan(&item.Name, &item.QuestionCount); err != nil {
			return nil, err
		}
		topics = append(topics, item)
	}

	return topics, rows.Err()
}

func (s *SQLiteStore) GetTopicQuestions(ctx context.Context, topic string) ([]bank.Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, prompt, options_json, correct_index, explanation, category
		 FROM topic_questions
		 WHERE topic = ?
		 ORDER BY position ASC`,
		topic,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]bank.Question, 0)
	for rows.Next() {
		var (
			question    bank.Question
			optionsJSON string
		)
		if err := rows.Scan(
			&question.ID,
			&question.Prompt,
			&optionsJSON,
			&question.CorrectIndex,
			&question.Explanation,
			&question.Category,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		exists, err := s.TopicExists(ctx, topic)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, bank.ErrTopicNotFound
		}
	}

	return questions, nil
}

// LoadBank reads every stored topic into a bank.
func (s *SQLiteStore) LoadBank(ctx context.Context) (*bank.Bank, error) {
	topics, err := s.ListTopics(ctx)
	if err != nil {
		return nil, err
	}

	b := bank.New()
	for _, topic := range topics {
		questions, err := s.GetTopicQuestions(ctx, topic.Name)
		if err != nil {
			return nil, err
		}
		if err := b.Add(topic.Name, questions); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (s *SQLiteStore) DeleteTopic(ctx context.Context, topic string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE name = ?`, topic)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return bank.ErrTopicNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM topic_questions WHERE topic = ?`, topic); err != nil {
		return err
	}
	return tx.Commit()
}
