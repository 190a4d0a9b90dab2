package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the handlers behind the /api routes.
type ServerInterface interface {
	ListQuestions(w http.ResponseWriter, r *http.Request)
	GetQuestion(w http.ResponseWriter, r *http.Request, id QuestionId)
	CreateQuestion(w http.ResponseWriter, r *http.Request)
	ListTags(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper binds path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) ListQuestions(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListQuestions(w, r)
}

func (siw *ServerInterfaceWrapper) GetQuestion(w http.ResponseWriter, r *http.Request) {
	var id QuestionId
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter id: %w", err))
		return
	}
	siw.Handler.GetQuestion(w, r, id)
}

func (siw *ServerInterfaceWrapper) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	siw.Handler.CreateQuestion(w, r)
}

func (siw *ServerInterfaceWrapper) ListTags(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListTags(w, r)
}
