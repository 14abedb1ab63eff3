package api

import (
	"net/http"

	"tutorflow/backend/internal/interfaces"
	"tutorflow/backend/internal/llm"
)

// ModelsResponse lists the selectable models.
type ModelsResponse struct {
	Default string          `json:"default" example:"gpt-4o-mini"`
	Models  []llm.ModelInfo `json:"models"`
}

// ModelHandler handles HTTP requests about available models.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List models
// @Description  Lists every model identifier a request may name, and whether its provider is configured.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  ModelsResponse
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ModelsResponse{Default: h.service.Default(), Models: h.service.List()})
}
