package interfaces

import (
	"context"

	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these, not on concrete implementations, so handlers
// can be tested against mocks.

// TutorService defines the contract for conversational replies.
// Stream methods return an error for input and lookup failures before any
// generation starts; otherwise every outcome arrives on the channel.
type TutorService interface {
	ListMessages(ctx context.Context, userID, sessionID string) ([]model.ConversationMessage, error)
	StreamReply(ctx context.Context, req *service.ReplyRequest) (<-chan model.StreamEvent, error)
	StreamRegeneration(ctx context.Context, req *service.RegenerateRequest) (<-chan model.StreamEvent, error)
}

// SummaryService defines the contract for topic and chapter overviews.
type SummaryService interface {
	StreamSummary(ctx context.Context, req *service.SummaryRequest) (<-chan model.StreamEvent, error)
}

// ModelService defines the contract for listing selectable models.
type ModelService interface {
	List() []llm.ModelInfo
	Default() string
}
