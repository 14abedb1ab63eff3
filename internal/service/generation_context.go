package service

import (
	"context"
	"errors"
	"fmt"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
)

// ModelResolver hands out provider handles by model identifier. An empty
// identifier selects the configured default.
type ModelResolver interface {
	Resolve(modelID string) (llm.Provider, error)
}

func resolveModel(models ModelResolver, modelID string) (llm.Provider, error) {
	provider, err := models.Resolve(modelID)
	if err != nil {
		if errors.Is(err, llm.ErrUnknownModel) {
			return nil, fmt.Errorf("%w: %w", app_errors.ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}
	return provider, nil
}

// loadGenerationContext rebuilds the prompt context from course, topic and
// chapter records.
func loadGenerationContext(ctx context.Context, repo repository.Repository, courseID, topicID, chapterID string, depth int) (model.GenerationContext, error) {
	gc := model.GenerationContext{Depth: model.ClampDepth(depth)}

	course, err := repo.LoadCourseContext(ctx, courseID)
	if err != nil {
		return gc, lookupError("course", courseID, err)
	}
	gc.CourseName, gc.Goal, gc.YearOfStudy, gc.ExamName = course.Name, course.Goal, course.YearOfStudy, course.ExamName

	if gc.TopicName, err = repo.LoadTopicName(ctx, topicID); err != nil {
		return gc, lookupError("topic", topicID, err)
	}
	if chapterID != "" {
		if gc.ChapterName, err = repo.LoadChapterName(ctx, chapterID); err != nil {
			return gc, lookupError("chapter", chapterID, err)
		}
	}
	return gc, nil
}

func lookupError(kind, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, app_errors.ErrNotFound)
	}
	return fmt.Errorf("could not load %s %s: %w", kind, id, err)
}
