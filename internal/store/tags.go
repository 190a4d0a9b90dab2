package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// NormalizeTag trims surrounding whitespace. Case is kept: tag names are
// case-sensitive.
func NormalizeTag(in string) string {
	return strings.TrimSpace(in)
}

// NormalizeTags normalizes names and drops duplicates and blanks, keeping the
// order in which names were first seen.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ResolveTag returns the id of the tag called name, creating it if needed.
func (s *Store) ResolveTag(ctx context.Context, name string) (int64, error) {
	name = NormalizeTag(name)
	if err := validateTagName(name); err != nil {
		return 0, err
	}
	return s.resolveTag(ctx, s.db, name)
}

// resolveTag looks the name up, inserts it when missing and, if the insert
// loses a race against a concurrent writer, looks it up again. The unique
// index on tags.name guarantees one row per name.
func (s *Store) resolveTag(ctx context.Context, ext sqlx.ExtContext, name string) (int64, error) {
	id, err := s.lookupTag(ctx, ext, name, "")
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	res, err := ext.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", name)
	if err == nil {
		return res.LastInsertId()
	}
	if !isDuplicate(err) {
		return 0, fmt.Errorf("insert tag %q: %w", name, err)
	}
	s.logger.Debug("tag insert lost race, reusing existing row", "tag", name)
	id, err = s.lookupTag(ctx, ext, name, s.dialect.lockShared)
	if err != nil {
		return 0, fmt.Errorf("lookup tag %q after conflict: %w", name, err)
	}
	return id, nil
}

func (s *Store) lookupTag(ctx context.Context, q sqlx.QueryerContext, name, suffix string) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, q, &id, "SELECT id FROM tags WHERE name = ?"+suffix, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListTags returns every tag with the number of questions carrying it,
// including tags no question uses any more.
func (s *Store) ListTags(ctx context.Context) ([]Tag, error) {
	query := `SELECT t.id, t.name, COUNT(qt.question_id) AS questions
	FROM tags t
	LEFT JOIN question_tags qt ON qt.tag_id = t.id
	GROUP BY t.id, t.name
	ORDER BY t.name`
	tags := []Tag{}
	if err := s.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Store) tagsForQuestion(ctx context.Context, q sqlx.QueryerContext, questionID int64) ([]string, error) {
	query := `SELECT t.name FROM question_tags qt
	JOIN tags t ON t.id = qt.tag_id
	WHERE qt.question_id = ?
	ORDER BY t.id`
	tags := []string{}
	if err := sqlx.SelectContext(ctx, q, &tags, query, questionID); err != nil {
		return nil, err
	}
	return tags, nil
}
