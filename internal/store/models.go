package store

import "time"

type Question struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	HTML      string    `db:"html"`
	CreatedAt time.Time `db:"created_at"`
	Tags      []string  `db:"-"`
}

// QuestionCreate is the input to CreateQuestion. Tag names are normalized
// and deduplicated before they are stored.
type QuestionCreate struct {
	Title string   `yaml:"title" validate:"notblank,max=255"`
	Body  string   `yaml:"body" validate:"notblank"`
	Tags  []string `yaml:"tags" validate:"dive,notblank,max=64"`
}

type Tag struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Questions int    `db:"questions"`
}

// questionTagRow is one row of the question/tag fan-out join.
type questionTagRow struct {
	Question
	TagName *string `db:"tag_name"`
}
