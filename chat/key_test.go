package chat

import "testing"

func TestConversationKey_Symmetric(t *testing.T) {
	if ConversationKey("alice", "bob") != ConversationKey("bob", "alice") {
		t.Fatal("key must be order-independent")
	}
}

func TestConversationKey_DistinctPairs(t *testing.T) {
	if ConversationKey("alice", "bob") == ConversationKey("alice", "carol") {
		t.Fatal("different pairs must get different keys")
	}
}

func TestConversationKey_SeparatorSafe(t *testing.T) {
	// "a:b" + "c" must not collide with "a" + "b:c"
	if ConversationKey("a:b", "c") == ConversationKey("a", "b:c") {
		t.Fatal("usernames containing the separator must not cause collisions")
	}
}
