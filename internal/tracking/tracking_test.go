package tracking

import (
	"errors"
	"sync"
	"testing"

	"cerealdash/internal/coordinator"
)

type memSender struct {
	mu   sync.Mutex
	sent []InteractionEvent
	fail bool
}

func (m *memSender) Send(data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("broker down")
	}
	m.sent = append(m.sent, data.(InteractionEvent))
	return nil
}

func TestTrackerDeliversInOrder(t *testing.T) {
	s := &memSender{}
	tr := NewTracker(s, 0)
	tr.Observe(coordinator.Event{Kind: coordinator.EventFilter, Filtered: 3})
	tr.Observe(coordinator.Event{Kind: coordinator.EventSelect, Key: "A"})
	tr.Observe(coordinator.Event{Kind: coordinator.EventReset})
	tr.Close()

	if len(s.sent) != 3 {
		t.Fatalf("Expected 3 events after Close, got %d", len(s.sent))
	}
	want := []coordinator.EventKind{coordinator.EventFilter, coordinator.EventSelect, coordinator.EventReset}
	for i, ev := range s.sent {
		if ev.Kind != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], ev.Kind)
		}
		if ev.Id == "" || ev.Time.IsZero() {
			t.Errorf("event %d missing id or time: %+v", i, ev)
		}
	}
	if s.sent[0].Id == s.sent[1].Id {
		t.Error("event ids must be unique")
	}
	if s.sent[1].Key != "A" {
		t.Errorf("Expected key A, got %q", s.sent[1].Key)
	}
}

func TestTrackerSurvivesSendErrors(t *testing.T) {
	s := &memSender{fail: true}
	tr := NewTracker(s, 1)
	tr.Observe(coordinator.Event{Kind: coordinator.EventBrush})
	tr.Close()
	if len(s.sent) != 0 {
		t.Errorf("nothing should be recorded by a failing sender, got %d", len(s.sent))
	}
}

func TestTrackerDropsEventsAfterClose(t *testing.T) {
	s := &memSender{}
	tr := NewTracker(s, 4)
	tr.Observe(coordinator.Event{Kind: coordinator.EventFilter})
	tr.Close()

	tr.Observe(coordinator.Event{Kind: coordinator.EventReset})
	tr.Close()

	if len(s.sent) != 1 || s.sent[0].Kind != coordinator.EventFilter {
		t.Errorf("Expected only the event before Close, got %+v", s.sent)
	}
}
