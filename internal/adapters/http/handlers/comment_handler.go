package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

// CommentHandler turns comment HTTP requests into commands.
type CommentHandler struct {
	comments ports.CommentService
	emails   ports.VerifiedEmailRefresher
	newID    func() uuid.UUID
}

// NewCommentHandler creates a CommentHandler that submits commands to
// comments and runs verified email checks through emails.
func NewCommentHandler(comments ports.CommentService, emails ports.VerifiedEmailRefresher) *CommentHandler {
	return &CommentHandler{comments: comments, emails: emails, newID: uuid.New}
}

// StartComment handles POST /api/v1/comments.
func (h *CommentHandler) StartComment(w http.ResponseWriter, r *http.Request) {
	var req dto.StartCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := h.newID()
	if err := h.comments.Handle(r.Context(), id, req.ToCommand()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/comments/"+id.String())
	writeJSON(w, r, http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}

// GetComment handles GET /api/v1/comments/{id}.
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := commentID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	state, err := h.comments.State(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	resp, ok := dto.ToCommentResponse(id, state)
	if !ok {
		dto.WriteErrorResponse(w, r, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound))
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// EnterBody handles PUT /api/v1/comments/{id}/body.
func (h *CommentHandler) EnterBody(w http.ResponseWriter, r *http.Request) {
	var req dto.EnterBodyRequest
	h.submitDecoded(w, r, &req, func() comment.Command { return req.ToCommand() })
}

// ChoosePersona handles PUT /api/v1/comments/{id}/persona.
func (h *CommentHandler) ChoosePersona(w http.ResponseWriter, r *http.Request) {
	var req dto.ChoosePersonaRequest
	h.submitDecoded(w, r, &req, func() comment.Command { return req.ToCommand() })
}

// DeclareCompetingInterests handles PUT /api/v1/comments/{id}/competing-interests.
func (h *CommentHandler) DeclareCompetingInterests(w http.ResponseWriter, r *http.Request) {
	var req dto.DeclareCompetingInterestsRequest
	h.submitDecoded(w, r, &req, func() comment.Command { return req.ToCommand() })
}

// AgreeToCodeOfConduct handles POST /api/v1/comments/{id}/code-of-conduct.
func (h *CommentHandler) AgreeToCodeOfConduct(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, comment.AgreeToCode{}, http.StatusNoContent)
}

// RequestPublication handles POST /api/v1/comments/{id}/publication. The
// reactors carry on after the response, so it answers 202.
func (h *CommentHandler) RequestPublication(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, comment.RequestPublication{}, http.StatusAccepted)
}

// RefreshVerifiedEmail handles POST /api/v1/comments/{id}/verified-email.
func (h *CommentHandler) RefreshVerifiedEmail(w http.ResponseWriter, r *http.Request) {
	id, err := commentID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.emails.Refresh(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) submitDecoded(
	w http.ResponseWriter, r *http.Request, req validatable, cmd func() comment.Command,
) {
	id, err := commentID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !decodeAndValidate(w, r, req) {
		return
	}
	h.handle(w, r, id, cmd(), http.StatusNoContent)
}

func (h *CommentHandler) submit(w http.ResponseWriter, r *http.Request, cmd comment.Command, status int) {
	id, err := commentID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	h.handle(w, r, id, cmd, status)
}

func (h *CommentHandler) handle(w http.ResponseWriter, r *http.Request, id uuid.UUID, cmd comment.Command, status int) {
	if err := h.comments.Handle(r.Context(), id, cmd); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(status)
}
