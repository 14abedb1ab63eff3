package service

import (
	"tutorflow/backend/internal/llm"
)

// ModelCatalog is the read side of the model registry.
type ModelCatalog interface {
	Models() []llm.ModelInfo
	DefaultID() string
}

// ModelService exposes the models a client may pick per request.
type ModelService struct {
	catalog ModelCatalog
}

// NewModelService creates a new ModelService.
func NewModelService(catalog ModelCatalog) *ModelService {
	return &ModelService{catalog: catalog}
}

// List returns every supported model, sorted by identifier, with the default flagged.
func (s *ModelService) List() []llm.ModelInfo {
	return s.catalog.Models()
}

// Default returns the identifier used when a request names no model.
func (s *ModelService) Default() string {
	return s.catalog.DefaultID()
}
