package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
)

const backgroundWriteTimeout = 15 * time.Second

// ReplyRequest asks the tutor to answer a new user message.
type ReplyRequest struct {
	UserID    string
	SessionID string
	Message   string
	Depth     int    // <= 0 keeps the depth of the previous reply
	Model     string // empty selects the default model
}

// RegenerateRequest asks the tutor to rewrite the assistant message at
// MessageIndex, typically at a different depth.
type RegenerateRequest struct {
	UserID       string
	SessionID    string
	MessageIndex int
	Depth        int
	Model        string
}

type TutorService struct {
	repo          repository.Repository
	models        ModelResolver
	pipeline      *Pipeline
	historyWindow int
	background    sync.WaitGroup
}

func NewTutorService(repo repository.Repository, models ModelResolver, pipeline *Pipeline, historyWindow int) *TutorService {
	return &TutorService{repo: repo, models: models, pipeline: pipeline, historyWindow: historyWindow}
}

// ListMessages returns the stored conversation of a session owned by userID.
func (s *TutorService) ListMessages(ctx context.Context, userID, sessionID string) ([]model.ConversationMessage, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.repo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not load messages: %w", err)
	}
	return messages, nil
}

// StreamReply validates the request and looks up everything generation
// needs, then streams the reply on the returned channel. Errors returned
// directly are input or lookup errors; nothing was generated.
func (s *TutorService) StreamReply(ctx context.Context, req *ReplyRequest) (<-chan model.StreamEvent, error) {
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", app_errors.ErrValidation)
	}

	session, err := s.ownedSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.LoadHistory(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}
	provider, err := resolveModel(s.models, req.Model)
	if err != nil {
		return nil, err
	}
	depth := replyDepth(req.Depth, history)
	gc, err := loadGenerationContext(ctx, s.repo, session.CourseID, session.TopicID, deref(session.ChapterID), depth)
	if err != nil {
		return nil, err
	}

	stream := newEventStream(ctx)
	go s.runReply(ctx, stream, session, history, provider, gc, req.Message)
	return stream.Events(), nil
}

func (s *TutorService) runReply(
	ctx context.Context,
	stream *eventStream,
	session *model.Session,
	history []model.ConversationMessage,
	provider llm.Provider,
	gc model.GenerationContext,
	userText string,
) {
	defer stream.Close()
	log := slog.With("session_id", session.ID, "provider", provider.Name(), "depth", gc.Depth)

	// Step 1: Save the user's message
	userMessage := &model.ConversationMessage{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		Role:        model.RoleUser,
		Content:     userText,
		ContentType: model.ContentText,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.AppendMessage(ctx, session.ID, userMessage); err != nil {
		stream.Fail(fmt.Errorf("could not save user message: %w", err))
		return
	}

	// Step 2: Build the bounded prompt
	window := NewContextWindow(s.historyWindow, s.pipeline.Summarizer(provider))
	prompt, err := window.BuildPrompt(ctx, tutorSystemPrompt(gc), history, userText)
	if err != nil {
		stream.Fail(err)
		return
	}

	// Step 3: Stream the reply
	text, err := s.pipeline.StreamText(ctx, provider, &llm.GenerateRequest{
		Messages:    prompt,
		Temperature: llm.Temperature(0.7),
	}, stream.Chunk)
	if err != nil {
		stream.Fail(err)
		return
	}

	// Step 4: Save the assistant's message. The client already has the text,
	// so a failed save is logged and the stream still completes.
	assistantMessage := &model.ConversationMessage{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		Role:        model.RoleAssistant,
		Content:     text,
		ContentType: model.ContentText,
		CreatedAt:   time.Now().UTC(),
		Depth:       model.IntPtr(gc.Depth),
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundWriteTimeout)
	if err := s.repo.AppendMessage(saveCtx, session.ID, assistantMessage); err != nil {
		log.Error("Failed to save assistant message.", "error", err)
	}
	cancel()

	stream.Done(model.ReplyResult{
		MessageID:    assistantMessage.ID,
		MessageIndex: len(history) + 1,
		Content:      text,
		Depth:        gc.Depth,
	})

	// Step 5: Post-generation actions
	if len(history) == 0 && session.Title == "" {
		s.generateTitleAsync(ctx, session.ID, userText, text)
	}
}

// StreamRegeneration rewrites one assistant message in place. The prompt is
// rebuilt from the conversation before the nearest preceding user turn, and
// the stored message is overwritten once the new text is complete, so the
// session keeps the same number of messages.
func (s *TutorService) StreamRegeneration(ctx context.Context, req *RegenerateRequest) (<-chan model.StreamEvent, error) {
	session, err := s.ownedSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.LoadHistory(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	if req.MessageIndex < 0 || req.MessageIndex >= len(history) {
		return nil, fmt.Errorf("%w: messageIndex %d is out of range", app_errors.ErrValidation, req.MessageIndex)
	}
	target := history[req.MessageIndex]
	if target.Role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: message %d is not an assistant message", app_errors.ErrValidation, req.MessageIndex)
	}
	userIndex := precedingUserTurn(history, req.MessageIndex)
	if userIndex < 0 {
		return nil, fmt.Errorf("%w: message %d has no preceding user message", app_errors.ErrValidation, req.MessageIndex)
	}

	provider, err := resolveModel(s.models, req.Model)
	if err != nil {
		return nil, err
	}
	depth := req.Depth
	if depth <= 0 && target.Depth != nil {
		depth = *target.Depth
	}
	gc, err := loadGenerationContext(ctx, s.repo, session.CourseID, session.TopicID, deref(session.ChapterID), depth)
	if err != nil {
		return nil, err
	}

	stream := newEventStream(ctx)
	go s.runRegeneration(ctx, stream, history, req.MessageIndex, userIndex, provider, gc)
	return stream.Events(), nil
}

func (s *TutorService) runRegeneration(
	ctx context.Context,
	stream *eventStream,
	history []model.ConversationMessage,
	targetIndex, userIndex int,
	provider llm.Provider,
	gc model.GenerationContext,
) {
	defer stream.Close()
	target := history[targetIndex]

	window := NewContextWindow(s.historyWindow, s.pipeline.Summarizer(provider))
	prompt, err := window.BuildPrompt(ctx, tutorSystemPrompt(gc), history[:userIndex], history[userIndex].Content)
	if err != nil {
		stream.Fail(err)
		return
	}

	text, err := s.pipeline.StreamText(ctx, provider, &llm.GenerateRequest{
		Messages:    prompt,
		Temperature: llm.Temperature(0.7),
	}, stream.Chunk)
	if err != nil {
		stream.Fail(err)
		return
	}

	s.overwriteAsync(ctx, target.ID, text, gc.Depth)
	stream.Done(model.ReplyResult{
		MessageID:    target.ID,
		MessageIndex: targetIndex,
		Content:      text,
		Depth:        gc.Depth,
	})
}

// Wait blocks until background message overwrites and title updates finish.
func (s *TutorService) Wait() {
	s.background.Wait()
}

func (s *TutorService) overwriteAsync(ctx context.Context, messageID, content string, depth int) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundWriteTimeout)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer cancel()
		if err := s.repo.OverwriteMessage(writeCtx, messageID, content, depth); err != nil {
			slog.ErrorContext(writeCtx, "Failed to overwrite regenerated message.", "message_id", messageID, "error", err)
		}
	}()
}

func (s *TutorService) generateTitleAsync(ctx context.Context, sessionID, userQuery, assistantResponse string) {
	titleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundWriteTimeout)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer cancel()
		s.generateTitle(titleCtx, sessionID, userQuery, assistantResponse)
	}()
}

// generateTitle names a session after its first exchange, using the default model.
func (s *TutorService) generateTitle(ctx context.Context, sessionID, userQuery, assistantResponse string) {
	provider, err := s.models.Resolve("")
	if err != nil {
		slog.WarnContext(ctx, "No default model for title generation.", "session_id", sessionID, "error", err)
		return
	}
	raw, err := s.pipeline.Complete(ctx, provider, titleRequest(userQuery, assistantResponse))
	if err != nil {
		slog.WarnContext(ctx, "Failed to generate session title.", "session_id", sessionID, "error", err)
		return
	}

	title := strings.Trim(strings.TrimSpace(raw), `"'`)
	if title == "" {
		slog.InfoContext(ctx, "Generated title was empty after cleaning, keeping session untitled.", "session_id", sessionID)
		return
	}
	if err := s.repo.UpdateSessionTitle(ctx, sessionID, truncate(title, 80)); err != nil {
		slog.WarnContext(ctx, "Failed to update session title.", "session_id", sessionID, "error", err)
		return
	}
	slog.InfoContext(ctx, "Session title updated.", "session_id", sessionID, "title", title)
}

func (s *TutorService) ownedSession(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	if userID == "" {
		return nil, app_errors.ErrUnauthenticated
	}
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", app_errors.ErrValidation)
	}
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, lookupError("session", sessionID, err)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, app_errors.ErrPermission)
	}
	return session, nil
}

// precedingUserTurn scans backward from index for the nearest user message.
func precedingUserTurn(history []model.ConversationMessage, index int) int {
	for i := index - 1; i >= 0; i-- {
		if history[i].Role == model.RoleUser {
			return i
		}
	}
	return -1
}

// replyDepth keeps the depth of the last assistant reply unless the caller
// asked for one.
func replyDepth(requested int, history []model.ConversationMessage) int {
	if requested > 0 {
		return model.ClampDepth(requested)
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == model.RoleAssistant && history[i].Depth != nil {
			return model.ClampDepth(*history[i].Depth)
		}
	}
	return model.MinDepth
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
