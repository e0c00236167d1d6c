package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/songurtechnology/wafelinvest/models"
)

type countingStore struct {
	mu    sync.Mutex
	saved []models.ChatMessage
}

func (s *countingStore) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, *msg)
	return nil
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func (s *countingStore) first(t *testing.T) models.ChatMessage {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saved) == 0 {
		t.Fatal("no message persisted")
	}
	return s.saved[0]
}

// dialConversation serves the conversation between alice and bob on a test
// server and returns alice's dialed connection.
func dialConversation(t *testing.T, store MessageStore) *websocket.Conn {
	t.Helper()

	hub := NewHub(newMemoryBroker())
	key := ConversationKey("alice", "bob")
	up := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, store, key,
			models.User{ID: 1, Username: "alice"},
			models.User{ID: 2, Username: "bob"})
		if err := hub.Join(key, client); err != nil {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestReadPump_PersistsOnceThenBroadcasts(t *testing.T) {
	store := &countingStore{}
	conn := dialConversation(t, store)

	if err := conn.WriteJSON(map[string]string{"message": "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if ev.Message != "hello" || ev.Sender != "alice" {
		t.Fatalf("unexpected event %+v", ev)
	}

	// persistence happens before the broadcast, so by now exactly one row
	if got := store.count(); got != 1 {
		t.Fatalf("expected exactly one persisted message, got %d", got)
	}
	msg := store.first(t)
	if msg.SenderID != 1 || msg.ReceiverID != 2 || msg.Message != "hello" {
		t.Fatalf("unexpected persisted message %+v", msg)
	}
	if msg.ConversationKey != ConversationKey("alice", "bob") {
		t.Fatalf("unexpected conversation key %s", msg.ConversationKey)
	}
}

func TestReadPump_MalformedFrameClosesConnection(t *testing.T) {
	store := &countingStore{}
	conn := dialConversation(t, store)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed after a malformed frame")
	}
	if got := store.count(); got != 0 {
		t.Fatalf("malformed frame must not be persisted, got %d saves", got)
	}
}

func TestReadPump_EmptyMessageSkipped(t *testing.T) {
	store := &countingStore{}
	conn := dialConversation(t, store)

	if err := conn.WriteJSON(map[string]string{"message": ""}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"message": "after"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if ev.Message != "after" {
		t.Fatalf("empty message must be skipped, got broadcast %+v", ev)
	}
	if got := store.count(); got != 1 {
		t.Fatalf("expected one persisted message, got %d", got)
	}
}
