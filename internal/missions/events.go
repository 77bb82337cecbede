package missions

import (
	"sync"
	"time"
)

type EventKind string

const (
	EventCompleted EventKind = "completed"
	EventReset     EventKind = "reset"
)

// Event is emitted after every change of the catalog state.
type Event struct {
	Kind       EventKind `json:"kind"`
	Type       Type      `json:"type"`
	MissionID  string    `json:"missionId,omitempty"`
	DailyLeft  int       `json:"dailyLeft"`
	WeeklyLeft int       `json:"weeklyLeft"`
	At         time.Time `json:"at"`
}

// Broadcaster fans events out to subscribers. Delivery is at most once and
// there is no replay: a subscriber that is not keeping up loses events.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]chan Event),
	}
}

// Subscribe returns the event channel and a func that cancels the
// subscription and closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber not ready, drop
		}
	}
}

func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
