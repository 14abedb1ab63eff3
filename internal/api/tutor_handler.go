package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/interfaces"
	"tutorflow/backend/internal/service"
)

// SendMessageRequest is the body of a new tutor message.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=8000" example:"Explain oxidative phosphorylation"`
	Depth   int    `json:"depth,omitempty" example:"2"`
	Model   string `json:"model,omitempty" validate:"max=64" example:"gpt-4o-mini"`
}

// RegenerateRequest is the body of a regenerate-at-index request.
type RegenerateRequest struct {
	MessageIndex *int   `json:"messageIndex" validate:"required,min=0" example:"18"`
	Depth        int    `json:"depth" example:"1"`
	Model        string `json:"model,omitempty" validate:"max=64"`
}

// TutorHandler serves the conversational endpoints of a session.
type TutorHandler struct {
	service interfaces.TutorService
}

func NewTutorHandler(svc interfaces.TutorService) *TutorHandler {
	return &TutorHandler{service: svc}
}

// HandleSendMessage godoc
// @Summary      Send a message to the tutor
// @Description  Streams the tutor reply as server-sent events: chunk events, then one done or error event.
// @Tags         Tutor
// @Accept       json
// @Produce      text/event-stream
// @Param        X-User-ID  header  string              true  "Caller identity"
// @Param        sessionID  path    string              true  "Session ID"
// @Param        request    body    SendMessageRequest  true  "Message"
// @Success      200  {object}  model.ReplyResult  "Final done event payload"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [post]
func (h *TutorHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var body SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&body); err != nil {
		respondWithError(w, err)
		return
	}

	events, err := h.service.StreamReply(r.Context(), &service.ReplyRequest{
		UserID:    UserIDFromContext(r.Context()),
		SessionID: chi.URLParam(r, "sessionID"),
		Message:   body.Message,
		Depth:     body.Depth,
		Model:     body.Model,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	streamEvents(w, r, events)
}

// HandleRegenerate godoc
// @Summary      Regenerate an assistant message
// @Description  Rewrites the assistant message at messageIndex, usually at a new depth, and streams the new text.
// @Tags         Tutor
// @Accept       json
// @Produce      text/event-stream
// @Param        X-User-ID  header  string             true  "Caller identity"
// @Param        sessionID  path    string             true  "Session ID"
// @Param        request    body    RegenerateRequest  true  "Target message and depth"
// @Success      200  {object}  model.ReplyResult  "Final done event payload"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/regenerate [post]
func (h *TutorHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var body RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&body); err != nil {
		respondWithError(w, err)
		return
	}

	events, err := h.service.StreamRegeneration(r.Context(), &service.RegenerateRequest{
		UserID:       UserIDFromContext(r.Context()),
		SessionID:    chi.URLParam(r, "sessionID"),
		MessageIndex: *body.MessageIndex,
		Depth:        body.Depth,
		Model:        body.Model,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	streamEvents(w, r, events)
}

// HandleListMessages godoc
// @Summary      List session messages
// @Tags         Tutor
// @Produce      json
// @Param        X-User-ID  header  string  true  "Caller identity"
// @Param        sessionID  path    string  true  "Session ID"
// @Success      200  {array}   model.ConversationMessage
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [get]
func (h *TutorHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}
