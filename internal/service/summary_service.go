package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
)

// SummaryRequest asks for the overview of a topic, or of one chapter of it.
type SummaryRequest struct {
	UserID    string
	CourseID  string
	TopicID   string
	ChapterID string
	Depth     int  // <= 0 means the depth last generated for this scope
	Force     bool // skip the cache read, still refresh it afterwards
	Model     string
}

type SummaryService struct {
	repo     repository.Repository
	models   ModelResolver
	pipeline *Pipeline
	cache    *SummaryCache
	now      func() time.Time
}

func NewSummaryService(repo repository.Repository, models ModelResolver, pipeline *Pipeline, cache *SummaryCache) *SummaryService {
	return &SummaryService{repo: repo, models: models, pipeline: pipeline, cache: cache, now: time.Now}
}

// StreamSummary returns a stream ending in a done event carrying a
// model.SummaryResult. A cache hit produces the done event alone.
func (s *SummaryService) StreamSummary(ctx context.Context, req *SummaryRequest) (<-chan model.StreamEvent, error) {
	if req.UserID == "" {
		return nil, app_errors.ErrUnauthenticated
	}
	if req.CourseID == "" || req.TopicID == "" {
		return nil, fmt.Errorf("%w: course and topic ids are required", app_errors.ErrValidation)
	}

	scopes := Scopes(req.TopicID, req.ChapterID)
	depth := s.cache.ResolveDepth(ctx, req.UserID, scopes, req.Depth)

	gc, err := loadGenerationContext(ctx, s.repo, req.CourseID, req.TopicID, req.ChapterID, depth)
	if err != nil {
		return nil, err
	}
	provider, err := resolveModel(s.models, req.Model)
	if err != nil {
		return nil, err
	}

	stream := newEventStream(ctx)

	if !req.Force {
		if entry, ok := s.cache.Lookup(ctx, req.UserID, scopes, depth); ok {
			slog.DebugContext(ctx, "Summary served from cache.", "user_id", req.UserID, "topic_id", req.TopicID, "depth", depth)
			go func() {
				defer stream.Close()
				stream.Done(model.SummaryResult{SummaryEntry: *entry, Depth: depth, Cached: true})
			}()
			return stream.Events(), nil
		}
	}

	go s.runSummary(ctx, stream, req.UserID, scopes[0], provider, gc)
	return stream.Events(), nil
}

func (s *SummaryService) runSummary(
	ctx context.Context,
	stream *eventStream,
	userID string,
	scope model.Scope,
	provider llm.Provider,
	gc model.GenerationContext,
) {
	defer stream.Close()

	entry, err := s.pipeline.StreamProseWithFollowUp(ctx, provider, summaryProseRequest(gc), summaryFollowUpRequest, stream.Chunk)
	if err != nil {
		stream.Fail(err)
		return
	}
	entry.GeneratedAt = s.now().UTC()

	stream.Done(model.SummaryResult{SummaryEntry: *entry, Depth: gc.Depth})
	s.cache.StoreAsync(ctx, userID, scope, gc.Depth, entry)
}
