package service

import (
	"context"
	"errors"
	"log/slog"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/model"
)

const (
	msgGenerationFailed  = "The tutor could not generate a response. Please try again."
	msgStreamInterrupted = "The response ended unexpectedly. Please try again."
)

var errStreamClosed = errors.New("stream already terminated")

// eventStream is the producer side of one generation stream. It enforces the
// stream shape: any number of chunks, then exactly one done or error event,
// then close.
type eventStream struct {
	ctx        context.Context
	ch         chan model.StreamEvent
	terminated bool
}

func newEventStream(ctx context.Context) *eventStream {
	return &eventStream{ctx: ctx, ch: make(chan model.StreamEvent, streamBuffer)}
}

func (s *eventStream) Events() <-chan model.StreamEvent { return s.ch }

func (s *eventStream) send(ev model.StreamEvent) error {
	if s.terminated {
		return errStreamClosed
	}
	select {
	case s.ch <- ev:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// Chunk is a ChunkSink.
func (s *eventStream) Chunk(content string) error {
	if content == "" {
		return nil
	}
	return s.send(model.ChunkEvent(content))
}

func (s *eventStream) Done(payload any) {
	if err := s.send(model.DoneEvent(payload)); err != nil {
		slog.DebugContext(s.ctx, "Done event not delivered.", "error", err)
	}
	s.terminated = true
}

// Fail logs err and emits a generic, user-facing error event.
func (s *eventStream) Fail(err error) {
	if s.terminated {
		return
	}
	if errors.Is(err, context.Canceled) {
		slog.InfoContext(s.ctx, "Generation stopped, client went away.")
	} else {
		slog.ErrorContext(s.ctx, "Generation failed.", "error", err, "upstream", errors.Is(err, app_errors.ErrUpstream))
	}
	_ = s.send(model.ErrorEvent(msgGenerationFailed))
	s.terminated = true
}

// Close emits an error event if nothing terminal was sent, then closes.
func (s *eventStream) Close() {
	if !s.terminated {
		_ = s.send(model.ErrorEvent(msgStreamInterrupted))
		s.terminated = true
	}
	close(s.ch)
}
