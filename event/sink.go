package event

import (
	"sync"

	"go.uber.org/zap"
)

// MemorySink accumulates events in memory. Safe for concurrent use.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Record appends e to the sink.
func (s *MemorySink) Record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of all recorded events in emission order.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByKind returns all recorded events of the given kind, in emission order.
func (s *MemorySink) ByKind(k Kind) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// ZapSink logs each event through a zap logger.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates a sink that writes events to log at info level.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

// Record logs the event.
func (s *ZapSink) Record(e Event) {
	s.log.Info("poip event",
		zap.String("kind", string(e.Kind)),
		zap.String("product", e.ProductID.String()),
		zap.String("principal", e.Principal.Hex()),
		zap.Uint64("amount", e.Amount),
	)
}
