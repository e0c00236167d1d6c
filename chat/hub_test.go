package chat

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/songurtechnology/wafelinvest/models"
)

// memoryBroker is an in-process Broker for tests: publish reaches every
// subscriber of the group, like the Redis implementation.
type memoryBroker struct {
	mu   sync.Mutex
	subs map[string][]chan []byte
}

func newMemoryBroker() *memoryBroker {
	return &memoryBroker{subs: make(map[string][]chan []byte)}
}

func (b *memoryBroker) Publish(ctx context.Context, group string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[group] {
		ch <- payload
	}
	return nil
}

func (b *memoryBroker) Subscribe(group string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[group] = append(b.subs[group], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		remaining := b.subs[group][:0]
		for _, c := range b.subs[group] {
			if c != ch {
				remaining = append(remaining, c)
			}
		}
		b.subs[group] = remaining
		close(ch)
	}
	return ch, cancel, nil
}

type nopStore struct{}

func (nopStore) SaveMessage(ctx context.Context, msg *models.ChatMessage) error { return nil }

func recvPayload(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.send:
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return Event{}
	}
}

func TestHub_BroadcastReachesAllMembersIncludingSender(t *testing.T) {
	hub := NewHub(newMemoryBroker())
	key := ConversationKey("alice", "bob")

	alice := NewClient(hub, nil, nopStore{}, key, models.User{ID: 1, Username: "alice"}, models.User{ID: 2, Username: "bob"})
	aliceOther := NewClient(hub, nil, nopStore{}, key, models.User{ID: 1, Username: "alice"}, models.User{ID: 2, Username: "bob"})
	bob := NewClient(hub, nil, nopStore{}, key, models.User{ID: 2, Username: "bob"}, models.User{ID: 1, Username: "alice"})

	for _, c := range []*Client{alice, aliceOther, bob} {
		if err := hub.Join(key, c); err != nil {
			t.Fatalf("join: %v", err)
		}
	}

	if err := hub.Publish(context.Background(), key, Event{Message: "hello", Sender: "alice"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, c := range []*Client{alice, aliceOther, bob} {
		ev := recvPayload(t, c)
		if ev.Message != "hello" || ev.Sender != "alice" {
			t.Fatalf("unexpected event %+v", ev)
		}
	}
}

func TestHub_OtherGroupDoesNotReceive(t *testing.T) {
	hub := NewHub(newMemoryBroker())
	keyAB := ConversationKey("alice", "bob")
	keyAC := ConversationKey("alice", "carol")

	bob := NewClient(hub, nil, nopStore{}, keyAB, models.User{ID: 2, Username: "bob"}, models.User{ID: 1, Username: "alice"})
	carol := NewClient(hub, nil, nopStore{}, keyAC, models.User{ID: 3, Username: "carol"}, models.User{ID: 1, Username: "alice"})

	if err := hub.Join(keyAB, bob); err != nil {
		t.Fatal(err)
	}
	if err := hub.Join(keyAC, carol); err != nil {
		t.Fatal(err)
	}

	if err := hub.Publish(context.Background(), keyAB, Event{Message: "hi", Sender: "bob"}); err != nil {
		t.Fatal(err)
	}

	recvPayload(t, bob)
	select {
	case payload := <-carol.send:
		t.Fatalf("carol must not receive messages for group(alice,bob), got %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_LeaveClosesSendAndEmptiesGroup(t *testing.T) {
	hub := NewHub(newMemoryBroker())
	key := ConversationKey("alice", "bob")

	c := NewClient(hub, nil, nopStore{}, key, models.User{ID: 1, Username: "alice"}, models.User{ID: 2, Username: "bob"})
	if err := hub.Join(key, c); err != nil {
		t.Fatal(err)
	}

	hub.Leave(key, c)

	if _, ok := <-c.send; ok {
		t.Fatal("send channel must be closed after leave")
	}

	hub.mu.Lock()
	_, exists := hub.groups[key]
	hub.mu.Unlock()
	if exists {
		t.Fatal("empty group must be dropped")
	}

	// leaving twice must be a no-op
	hub.Leave(key, c)
}
