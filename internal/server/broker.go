package server

import (
	"encoding/json"
	"sync"
)

// Notification is the message fanned out to every connected listener after an
// accepted write.
type Notification struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
	Time    string `json:"time"`
}

// Broker is an in-process pub/sub over one global listener set. Publish is
// fire-and-forget: it never blocks, never fails observably, and listeners that
// connect later never see earlier events.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded notifications.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	listenersGauge.Inc()
	return ch
}

// Unsubscribe removes a channel from the listener set.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	listenersGauge.Dec()
}

// Publish stamps the notification and sends it to all current listeners.
func (b *Broker) Publish(event string, payload any) {
	data, err := json.Marshal(Notification{
		Event:   event,
		Payload: payload,
		Time:    nowUTC(),
	})
	if err != nil {
		return
	}

	broadcastsTotal.WithLabelValues(event).Inc()

	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if the listener is slow.
		}
	}
	b.mu.RUnlock()
}
