// Package seed fills an empty database with starter questions.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arawak/agora/internal/store"
)

//go:embed questions.yaml
var defaultQuestions []byte

// Load parses seed questions from path, or the built-in set when path is empty.
func Load(path string) ([]store.QuestionCreate, error) {
	data := defaultQuestions
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	var items []store.QuestionCreate
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return items, nil
}

// Run creates items through the store when no question exists yet and
// reports how many were inserted.
func Run(ctx context.Context, st *store.Store, items []store.QuestionCreate, logger *slog.Logger) (int, error) {
	n, err := st.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("seed skipped, database not empty", "questions", n)
		return 0, nil
	}
	for i, item := range items {
		if _, err := st.CreateQuestion(ctx, item); err != nil {
			return i, fmt.Errorf("seed question %d: %w", i, err)
		}
	}
	logger.Info("seed questions inserted", "count", len(items))
	return len(items), nil
}
