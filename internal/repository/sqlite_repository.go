package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tutorflow/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := `
		SELECT id, user_id, course_id, topic_id, chapter_id, title, created_at, updated_at
		FROM sessions WHERE id = ?
	`
	var s model.Session
	var chapterID sql.NullString
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID, &s.UserID, &s.CourseID, &s.TopicID, &chapterID, &s.Title, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get session %s: %w", sessionID, err)
	}
	if chapterID.Valid && chapterID.String != "" {
		s.ChapterID = &chapterID.String
	}
	return &s, nil
}

func (r *sqliteRepository) UpdateSessionTitle(ctx context.Context, sessionID, title string) error {
	query := "UPDATE sessions SET title = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, title, time.Now().UTC(), sessionID)
	return err
}

func (r *sqliteRepository) LoadHistory(ctx context.Context, sessionID string) ([]model.ConversationMessage, error) {
	query := `
		SELECT id, role, content, content_type, created_at, depth
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}
	defer rows.Close()

	messages := make([]model.ConversationMessage, 0)
	for rows.Next() {
		msg := model.ConversationMessage{SessionID: sessionID}
		var depth sql.NullInt64
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.ContentType, &msg.CreatedAt, &depth); err != nil {
			return nil, err
		}
		if depth.Valid {
			msg.Depth = model.IntPtr(int(depth.Int64))
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// AppendMessage inserts the message and bumps the session timestamp in one
// transaction.
func (r *sqliteRepository) AppendMessage(ctx context.Context, sessionID string, message *model.ConversationMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var depth sql.NullInt64
	if message.Depth != nil {
		depth = sql.NullInt64{Int64: int64(*message.Depth), Valid: true}
	}
	contentType := message.ContentType
	if contentType == "" {
		contentType = model.ContentText
	}

	insertQuery := `
		INSERT INTO messages (id, session_id, role, content, content_type, created_at, depth)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err = tx.ExecContext(ctx, insertQuery,
		message.ID, sessionID, message.Role, message.Content, contentType, message.CreatedAt, depth,
	); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "UPDATE sessions SET updated_at = ? WHERE id = ?", time.Now().UTC(), sessionID); err != nil {
		return fmt.Errorf("could not update session timestamp: %w", err)
	}

	return tx.Commit()
}

// OverwriteMessage replaces the content of one message in place. The message
// keeps its id and position in the session.
func (r *sqliteRepository) OverwriteMessage(ctx context.Context, messageID, content string, depth int) error {
	query := "UPDATE messages SET content = ?, depth = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, content, depth, messageID)
	if err != nil {
		return fmt.Errorf("could not overwrite message %s: %w", messageID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) LoadCourseContext(ctx context.Context, courseID string) (*model.CourseContext, error) {
	query := "SELECT name, goal, year_of_study, exam_name FROM courses WHERE id = ?"
	var c model.CourseContext
	var goal, year, exam sql.NullString
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&c.Name, &goal, &year, &exam); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not load course %s: %w", courseID, err)
	}
	c.Goal, c.YearOfStudy, c.ExamName = goal.String, year.String, exam.String
	return &c, nil
}

func (r *sqliteRepository) LoadTopicName(ctx context.Context, topicID string) (string, error) {
	return r.loadName(ctx, "SELECT name FROM topics WHERE id = ?", topicID)
}

func (r *sqliteRepository) LoadChapterName(ctx context.Context, chapterID string) (string, error) {
	return r.loadName(ctx, "SELECT name FROM chapters WHERE id = ?", chapterID)
}

func (r *sqliteRepository) loadName(ctx context.Context, query, id string) (string, error) {
	var name string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}
