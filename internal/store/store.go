package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("not found")
var ErrValidation = errors.New("validation failed")

// Renderer turns a raw question body into sanitized HTML.
type Renderer interface {
	Render(body string) string
}

type Store struct {
	db       *sqlx.DB
	dialect  dialect
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
}

func New(db *sqlx.DB, renderer Renderer, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:       db,
		dialect:  dialectFor(db.DriverName()),
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateQuestion validates and renders the question, then stores it together
// with its tags in a single transaction. Nothing is persisted on failure.
func (s *Store) CreateQuestion(ctx context.Context, in QuestionCreate) (int64, error) {
	if err := validateCreate(in); err != nil {
		return 0, err
	}
	tags := NormalizeTags(in.Tags)
	html := s.renderer.Render(in.Body)
	createdAt := s.now().UTC().Truncate(time.Microsecond)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO questions (title, body, html, created_at) VALUES (?, ?, ?, ?)",
		in.Title, in.Body, html, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := s.linkTagsTx(ctx, tx, id, tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("question created", "id", id, "tags", len(tags))
	return id, nil
}

func (s *Store) linkTagsTx(ctx context.Context, tx *sqlx.Tx, questionID int64, tags []string) error {
	for _, name := range tags {
		tagID, err := s.resolveTag(ctx, tx, name)
		if err != nil {
			return fmt.Errorf("resolve tag %q: %w", name, err)
		}
		_, err = tx.ExecContext(ctx, "INSERT INTO question_tags (question_id, tag_id) VALUES (?, ?)", questionID, tagID)
		if err != nil && !isDuplicate(err) {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

// GetQuestion returns the question with its tags ordered by tag id.
func (s *Store) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := s.db.GetContext(ctx, &q, "SELECT id, title, body, html, created_at FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	tags, err := s.tagsForQuestion(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	q.Tags = tags
	return &q, nil
}

// ListQuestions returns every question, newest first. The join fans out one
// row per tag; rows arrive grouped by question and are folded back into one
// Question each.
func (s *Store) ListQuestions(ctx context.Context) ([]Question, error) {
	query := `SELECT q.id, q.title, q.body, q.html, q.created_at, t.name AS tag_name
	FROM questions q
	LEFT JOIN question_tags qt ON qt.question_id = q.id
	LEFT JOIN tags t ON t.id = qt.tag_id
	ORDER BY q.created_at DESC, q.id DESC, t.id ASC`
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		var r questionTagRow
		if err := rows.StructScan(&r); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].ID != r.ID {
			r.Question.Tags = []string{}
			out = append(out, r.Question)
		}
		if r.TagName != nil {
			last := &out[len(out)-1]
			last.Tags = append(last.Tags, *r.TagName)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM questions"); err != nil {
		return 0, err
	}
	return n, nil
}
