package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Event is the outbound frame broadcast to every member of a conversation
// group, including the sender's own connections.
type Event struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// Broker is the external pub/sub collaborator. Publish must reach every
// currently subscribed consumer of the group across the cluster.
type Broker interface {
	Publish(ctx context.Context, group string, payload []byte) error
	Subscribe(group string) (<-chan []byte, func(), error)
}

// Hub tracks which local connections are joined to which conversation
// group. Delivery always goes through the broker, so members on other
// processes receive the same events as local ones.
type Hub struct {
	broker Broker

	mu     sync.Mutex
	groups map[string]*group
}

type group struct {
	members map[*Client]struct{}
	cancel  func()
}

func NewHub(broker Broker) *Hub {
	return &Hub{
		broker: broker,
		groups: make(map[string]*group),
	}
}

// Join adds the connection to the group, subscribing to the broker on the
// group's first member.
func (h *Hub) Join(key string, c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.groups[key]
	if g == nil {
		ch, cancel, err := h.broker.Subscribe(key)
		if err != nil {
			return err
		}
		g = &group{
			members: make(map[*Client]struct{}),
			cancel:  cancel,
		}
		h.groups[key] = g
		go h.fanout(key, ch)
	}
	g.members[c] = struct{}{}
	return nil
}

// Leave removes the connection from its group and drops the broker
// subscription when the group empties. Nothing is broadcast on disconnect.
func (h *Hub) Leave(key string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.groups[key]
	if g == nil {
		return
	}
	if _, member := g.members[c]; member {
		delete(g.members, c)
		close(c.send)
	}
	if len(g.members) == 0 {
		g.cancel()
		delete(h.groups, key)
	}
}

// Publish sends the event to the group through the broker. Persistence of
// the message happens before this call; the two are not atomic.
func (h *Hub) Publish(ctx context.Context, key string, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return h.broker.Publish(ctx, key, payload)
}

func (h *Hub) fanout(key string, ch <-chan []byte) {
	for payload := range ch {
		h.mu.Lock()
		if g, ok := h.groups[key]; ok {
			for c := range g.members {
				select {
				case c.send <- payload:
				default:
					// slow consumer, drop the connection
					delete(g.members, c)
					close(c.send)
					c.conn.Close()
					log.Printf("[chat] dropped slow consumer in group %s", key)
				}
			}
		}
		h.mu.Unlock()
	}
}
