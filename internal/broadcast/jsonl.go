package broadcast

import (
	"fmt"
	"sync"

	"jet1090go/internal/logging"
)

// JSONLSink is the concrete `.jsonl` persistence collaborator spec
// §6.5 names: one decoded Event per line, in arrival order, reusing
// the teacher's gzip daily LogRotator instead of a bespoke file writer.
type JSONLSink struct {
	rotator *logging.LogRotator

	mu sync.Mutex
}

// NewJSONLSink wraps an already-started LogRotator as a Broadcaster.
func NewJSONLSink(rotator *logging.LogRotator) *JSONLSink {
	return &JSONLSink{rotator: rotator}
}

// Publish implements Broadcaster.
func (s *JSONLSink) Publish(evt Event) error {
	payload, err := evt.Marshal()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writer, err := s.rotator.GetWriter()
	if err != nil {
		return fmt.Errorf("jsonl sink: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := writer.Write(payload); err != nil {
		return fmt.Errorf("jsonl sink: %w", err)
	}
	return nil
}

// Close is a no-op: the underlying LogRotator's lifecycle is owned by
// whoever constructed it.
func (s *JSONLSink) Close() error { return nil }

// Multi fans one Event out to several Broadcasters, continuing past
// individual sink errors so one slow or failed sink doesn't starve the
// others; the first error encountered, if any, is returned.
type Multi struct {
	Sinks []Broadcaster
}

func (m Multi) Publish(evt Event) error {
	var firstErr error
	for _, sink := range m.Sinks {
		if err := sink.Publish(evt); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m Multi) Close() error {
	var firstErr error
	for _, sink := range m.Sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
