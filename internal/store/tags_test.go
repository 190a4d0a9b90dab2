package store

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"  Foo  ":   "Foo",
		"Foo   Bar": "Foo   Bar",
		"":          "",
		"  ":        "",
		"\tBible\n": "Bible",
		"Free Will": "Free Will",
	}
	for in, expect := range cases {
		if got := NormalizeTag(in); got != expect {
			t.Fatalf("normalize %q => %q, expected %q", in, got, expect)
		}
	}
}

func TestNormalizeTagsKeepsFirstSeenOrder(t *testing.T) {
	in := []string{"Theology", "Bible", " Theology ", "bible", "", "Bible", "Ethics"}
	norm := NormalizeTags(in)
	expect := []string{"Theology", "Bible", "bible", "Ethics"}
	if len(norm) != len(expect) {
		t.Fatalf("expected %d tags got %d", len(expect), len(norm))
	}
	for i := range norm {
		if norm[i] != expect[i] {
			t.Fatalf("tag %d expected %q got %q", i, expect[i], norm[i])
		}
	}
}

func TestResolveTagIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.ResolveTag(ctx, "Bible")
	require.NoError(t, err)
	second, err := st.ResolveTag(ctx, "Bible")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := st.ResolveTag(ctx, "bible")
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "tag names are case-sensitive")
}

func TestResolveTagRejectsBlank(t *testing.T) {
	st := newTestStore(t)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := st.ResolveTag(context.Background(), name)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, countRows(t, st.DB(), "SELECT COUNT(*) FROM tags"))
}

func TestTagNameRulesAgreeAcrossCreateAndResolve(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	padded := "  " + strings.Repeat("x", 63)
	tooLong := " " + strings.Repeat("y", 65) + " "

	id, err := st.ResolveTag(ctx, padded)
	require.NoError(t, err)

	qid, err := st.CreateQuestion(ctx, QuestionCreate{Title: "t", Body: "b", Tags: []string{padded}})
	require.NoError(t, err)
	q, err := st.GetQuestion(ctx, qid)
	require.NoError(t, err)
	assert.Equal(t, []string{strings.Repeat("x", 63)}, q.Tags)
	assert.Equal(t, 1, countRows(t, st.DB(), "SELECT COUNT(*) FROM tags WHERE id = ?", id))
	assert.Equal(t, 1, countRows(t, st.DB(), "SELECT COUNT(*) FROM question_tags WHERE question_id = ? AND tag_id = ?", qid, id))

	_, err = st.ResolveTag(ctx, tooLong)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = st.CreateQuestion(ctx, QuestionCreate{Title: "t", Body: "b", Tags: []string{tooLong}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveTagConcurrent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	const workers = 16
	ids := make([]int64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = st.ResolveTag(ctx, "Evolution")
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, countRows(t, st.DB(), "SELECT COUNT(*) FROM tags WHERE name = ?", "Evolution"))
}

func TestResolveTagAfterLostInsert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	existing, err := st.ResolveTag(ctx, "Science")
	require.NoError(t, err)

	// simulate losing the race: the insert path must fall back to a lookup
	_, err = st.DB().ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", "Science")
	require.Error(t, err)
	assert.True(t, isDuplicate(err))

	id, err := st.resolveTag(ctx, st.DB(), "Science")
	require.NoError(t, err)
	assert.Equal(t, existing, id)
}

func TestConcurrentCreatesShareNewTag(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = st.CreateQuestion(ctx, QuestionCreate{Title: "q", Body: "b", Tags: []string{"Spirits", "Nature"}})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 2, countRows(t, st.DB(), "SELECT COUNT(*) FROM tags"))
	assert.Equal(t, workers*2, countRows(t, st.DB(), "SELECT COUNT(*) FROM question_tags"))
}

func TestListTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateQuestion(ctx, QuestionCreate{Title: "a", Body: "b", Tags: []string{"Bible", "Theology"}})
	require.NoError(t, err)
	_, err = st.CreateQuestion(ctx, QuestionCreate{Title: "c", Body: "d", Tags: []string{"Bible"}})
	require.NoError(t, err)
	_, err = st.ResolveTag(ctx, "Orphan")
	require.NoError(t, err)

	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "Bible", tags[0].Name)
	assert.Equal(t, 2, tags[0].Questions)
	assert.Equal(t, "Orphan", tags[1].Name)
	assert.Equal(t, 0, tags[1].Questions)
	assert.Equal(t, "Theology", tags[2].Name)
	assert.Equal(t, 1, tags[2].Questions)
}
