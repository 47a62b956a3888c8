package tracking

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"cerealdash/internal/coordinator"
)

// InteractionEvent is one committed dashboard interaction.
type InteractionEvent struct {
	Id   string    `json:"id"`
	Time time.Time `json:"time"`
	coordinator.Event
}

type Sender interface {
	Send(data any) error
}

// Tracker observes the coordinator and ships events to a Sender from a
// background goroutine so the dispatch path never waits on the network.
type Tracker struct {
	sender Sender
	queue  chan InteractionEvent
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewTracker(sender Sender, buffer int) *Tracker {
	if buffer <= 0 {
		buffer = 256
	}
	t := &Tracker{sender: sender, queue: make(chan InteractionEvent, buffer)}
	t.wg.Add(1)
	go t.run()
	return t
}

// Observe queues ev. Events are dropped when the queue is full or the
// tracker is closed.
func (t *Tracker) Observe(ev coordinator.Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	item := InteractionEvent{Id: uuid.New().String(), Time: time.Now(), Event: ev}
	select {
	case t.queue <- item:
	default:
		log.Printf("tracking queue full, dropping %s event", ev.Kind)
	}
}

func (t *Tracker) run() {
	defer t.wg.Done()
	for item := range t.queue {
		if err := t.sender.Send(item); err != nil {
			log.Printf("failed to send tracking event %s: %v", item.Id, err)
		}
	}
}

// Close drains the queue. Later events are dropped.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()
	t.wg.Wait()
}
