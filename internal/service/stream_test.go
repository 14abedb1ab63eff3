package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutorflow/backend/internal/model"
)

func TestEventStream(t *testing.T) {
	t.Run("Close without a terminal event emits an error", func(t *testing.T) {
		s := newEventStream(context.Background())
		go func() {
			_ = s.Chunk("partial")
			s.Close()
		}()

		got := collect(t, s.Events())

		last := assertStreamShape(t, got)
		assert.Equal(t, model.EventError, last.Type)
		assert.Equal(t, msgStreamInterrupted, last.Message)
	})

	t.Run("Nothing follows a terminal event", func(t *testing.T) {
		s := newEventStream(context.Background())
		go func() {
			_ = s.Chunk("a")
			s.Done(model.ReplyResult{Content: "a"})
			assert.ErrorIs(t, s.Chunk("late"), errStreamClosed)
			s.Fail(errors.New("late failure"))
			s.Close()
		}()

		got := collect(t, s.Events())

		assert.Len(t, got, 2)
		assert.Equal(t, model.EventDone, assertStreamShape(t, got).Type)
	})

	t.Run("Empty chunks are skipped", func(t *testing.T) {
		s := newEventStream(context.Background())
		go func() {
			_ = s.Chunk("")
			s.Fail(errors.New("boom"))
			s.Close()
		}()

		got := collect(t, s.Events())

		assert.Len(t, got, 1)
		assert.Equal(t, model.EventError, got[0].Type)
	})
}
