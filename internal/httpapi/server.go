package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arawak/agora/internal/config"
	"github.com/arawak/agora/internal/store"
	"github.com/arawak/agora/internal/swaggerui"
)

const genericError = "Server error"

//go:embed openapi.yaml
var openapiData []byte

type Server struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewRouter(cfg *config.Config, st *store.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	s := &Server{cfg: cfg, store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(loggingMiddleware(logger))

	if len(cfg.CORSAllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Accept"},
		})
		r.Use(c.Handler)
	}

	r.Get("/healthz", s.GetHealthz)
	r.Get("/readyz", s.GetReadyz)
	r.Get(cfg.OpenAPIPath, s.serveOpenAPI)
	r.Mount(cfg.SwaggerUIPath, swaggerui.Handler(cfg.SwaggerUIPath, cfg.OpenAPIPath))

	wrapper := ServerInterfaceWrapper{Handler: s, ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(w, http.StatusBadRequest, err.Error())
	}}

	r.Get("/api/questions", wrapper.ListQuestions)
	r.Get("/api/question/{id}", wrapper.GetQuestion)
	r.Post("/api/post", wrapper.CreateQuestion)
	r.Get("/api/tags", wrapper.ListTags)

	return r
}

func (s *Server) serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiData)
}

func (s *Server) GetHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

func (s *Server) GetReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

func (s *Server) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.store.ListQuestions(r.Context())
	if err != nil {
		s.internalError(w, "list questions", err)
		return
	}
	resp := make([]QuestionSummary, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		resp = append(resp, QuestionSummary{
			Id:        q.ID,
			Title:     q.Title,
			Body:      q.Body,
			Html:      q.HTML,
			CreatedAt: q.CreatedAt,
			Tags:      strings.Join(q.Tags, ","),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetQuestion(w http.ResponseWriter, r *http.Request, id QuestionId) {
	q, err := s.store.GetQuestion(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		s.internalError(w, "get question", err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIQuestion(q))
}

func (s *Server) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var payload QuestionCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := s.store.CreateQuestion(r.Context(), store.QuestionCreate{
		Title: payload.Title,
		Body:  payload.Body,
		Tags:  payload.Tags,
	})
	if errors.Is(err, store.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "create question", err)
		return
	}
	writeJSON(w, http.StatusOK, QuestionCreated{Success: true, Id: id})
}

func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		s.internalError(w, "list tags", err)
		return
	}
	resp := make([]Tag, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, Tag{Name: t.Name, Count: t.Questions})
	}
	writeJSON(w, http.StatusOK, resp)
}

// internalError logs err and answers with a message that leaks no detail.
func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, genericError)
}

func toAPIQuestion(q *store.Question) Question {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return Question{
		Id:        q.ID,
		Title:     q.Title,
		Body:      q.Body,
		Html:      q.HTML,
		CreatedAt: q.CreatedAt,
		Tags:      tags,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start).String(),
			)
		})
	}
}
