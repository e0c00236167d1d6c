package chat

import "net/url"

// ConversationKey returns the canonical group key for a pair of usernames.
// Both names are escaped before joining so a username containing the
// separator cannot collide with another pair, and the pair is sorted so
// ConversationKey(a, b) == ConversationKey(b, a).
func ConversationKey(a, b string) string {
	ea := url.QueryEscape(a)
	eb := url.QueryEscape(b)
	if ea > eb {
		ea, eb = eb, ea
	}
	return ea + ":" + eb
}
