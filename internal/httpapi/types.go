package httpapi

import "time"

// QuestionId is the path parameter of GET /api/question/{id}.
type QuestionId = int64

type HealthStatus string

const Ok HealthStatus = "ok"

type Health struct {
	Status HealthStatus `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Question is the single-question shape; tags are a list.
type Question struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Html      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

// QuestionSummary is the list shape; tags are joined with commas.
type QuestionSummary struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Html      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	Tags      string    `json:"tags"`
}

type QuestionCreate struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

type QuestionCreated struct {
	Success bool  `json:"success"`
	Id      int64 `json:"id"`
}

type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
