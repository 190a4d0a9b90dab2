package seed

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arawak/agora/internal/render"
	"github.com/arawak/agora/internal/store"
	"github.com/arawak/agora/migrations"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, migrations.Up("sqlite", store.SQLiteDSN(dsn)))
	db, err := store.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.New(db, render.New(), nil)
}

func TestLoadDefault(t *testing.T) {
	items, err := Load("")
	require.NoError(t, err)
	require.Len(t, items, 12)
	last := items[len(items)-1]
	assert.Equal(t, "Is evolution supported in the Bible?", last.Title)
	assert.Equal(t, []string{"Bible", "Theology", "Science", "Evolution"}, last.Tags)
	assert.Contains(t, items[5].Tags, "Free Will")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: One\n  body: First\n  tags: [a, b]\n"), 0o600))

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, store.QuestionCreate{Title: "One", Body: "First", Tags: []string{"a", "b"}}, items[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunSeedsOnlyEmptyDatabase(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	items, err := Load("")
	require.NoError(t, err)

	n, err := Run(ctx, st, items, logger)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = Run(ctx, st, items, logger)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := st.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	byName := map[string]int{}
	for _, tg := range tags {
		byName[tg.Name] = tg.Questions
	}
	assert.Equal(t, 10, byName["Bible"])
	assert.Equal(t, 11, byName["Theology"])
}

func TestRunStopsOnInvalidItem(t *testing.T) {
	st := newTestStore(t)
	items := []store.QuestionCreate{
		{Title: "ok", Body: "fine"},
		{Title: "", Body: "no title"},
	}
	n, err := Run(context.Background(), st, items, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, store.ErrValidation)
	assert.Equal(t, 1, n)
}
