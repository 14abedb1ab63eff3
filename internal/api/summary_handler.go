package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/interfaces"
	"tutorflow/backend/internal/service"
)

// SummaryHandler serves topic and chapter overviews.
type SummaryHandler struct {
	service interfaces.SummaryService
}

func NewSummaryHandler(svc interfaces.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: svc}
}

// HandleGetSummary godoc
// @Summary      Stream a topic summary
// @Description  Streams an overview of the topic, or of one of its chapters, followed by a comprehension question.
// @Description  Cached overviews are returned as a single done event.
// @Tags         Summary
// @Produce      text/event-stream
// @Param        X-User-ID  header  string  true   "Caller identity"
// @Param        courseID   path    string  true   "Course ID"
// @Param        topicID    path    string  true   "Topic ID"
// @Param        depth      query   int     false  "Detail level 1-5; 0 or absent reuses the last one"
// @Param        force      query   bool    false  "Regenerate even if cached"
// @Param        chapterId  query   string  false  "Chapter ID"
// @Param        model      query   string  false  "Model identifier"
// @Success      200  {object}  model.SummaryResult  "Final done event payload"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /v1/courses/{courseID}/topics/{topicID}/summary [get]
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	depth := 0
	if raw := query.Get("depth"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: depth must be an integer", app_errors.ErrValidation))
			return
		}
		depth = v
	}
	force := false
	if raw := query.Get("force"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: force must be a boolean", app_errors.ErrValidation))
			return
		}
		force = v
	}

	events, err := h.service.StreamSummary(r.Context(), &service.SummaryRequest{
		UserID:    UserIDFromContext(r.Context()),
		CourseID:  chi.URLParam(r, "courseID"),
		TopicID:   chi.URLParam(r, "topicID"),
		ChapterID: query.Get("chapterId"),
		Depth:     depth,
		Force:     force,
		Model:     query.Get("model"),
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	streamEvents(w, r, events)
}
