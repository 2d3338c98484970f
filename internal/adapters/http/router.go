// Package http is the inbound HTTP adapter: the comment API under
// /api/v1/comments, the health probes and the server lifecycle.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
	"github.com/jsamuelsen11/review-comments/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/review-comments/internal/domain"
)

// NewRouter mounts the comment and health handlers behind middlewares,
// applied outermost first. Unknown paths and methods answer with a problem
// document like every other error.
func NewRouter(
	comments *handlers.CommentHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteErrorResponse(w, r, fmt.Errorf("no route for %s: %w", r.URL.Path, domain.ErrNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteProblem(w, r, dto.NewProblem(r, http.StatusMethodNotAllowed,
			fmt.Sprintf("%s is not supported on %s", r.Method, r.URL.Path)))
	})

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/v1/comments", func(r chi.Router) {
		r.Post("/", comments.StartComment)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", comments.GetComment)
			r.Put("/body", comments.EnterBody)
			r.Put("/persona", comments.ChoosePersona)
			r.Put("/competing-interests", comments.DeclareCompetingInterests)
			r.Post("/code-of-conduct", comments.AgreeToCodeOfConduct)
			r.Post("/verified-email", comments.RefreshVerifiedEmail)
			r.Post("/publication", comments.RequestPublication)
		})
	})

	return r
}
