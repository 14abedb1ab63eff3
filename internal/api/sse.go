package api

import (
	"log/slog"
	"net/http"

	"tutorflow/backend/internal/model"
)

const streamEndedMessage = "The response ended unexpectedly. Please try again."

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Stops nginx-style proxies from buffering the stream.
	w.Header().Set("X-Accel-Buffering", "no")
}

// streamEvents frames every event as SSE until the producer closes events.
// At most one terminal event reaches the client and nothing is written after
// it. If the producer stops without one, an error event is written instead.
// After a failed write the channel is still drained so the producer can finish.
func streamEvents(w http.ResponseWriter, r *http.Request, events <-chan model.StreamEvent) {
	setStreamHeaders(w)
	w.WriteHeader(http.StatusOK)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	log := slog.With("path", r.URL.Path)
	terminated := false
	writable := true

	for ev := range events {
		if terminated || !writable {
			continue
		}
		if err := writeStreamEvent(w, ev); err != nil {
			log.Info("Client disconnected during stream.", "error", err)
			writable = false
			continue
		}
		terminated = ev.IsTerminal()
	}

	if !terminated && writable && r.Context().Err() == nil {
		log.Warn("Stream closed without a terminal event.")
		_ = writeStreamEvent(w, model.ErrorEvent(streamEndedMessage))
	}
}
