package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// maxStoredExchanges bounds per-user history.
	maxStoredExchanges = 10
	// promptExchanges is how many recent exchanges feed the prompt.
	promptExchanges = 3
)

// exchange is one user/assistant turn pair.
type exchange struct {
	User      string
	Assistant string
	Topic     Topic
	At        time.Time
}

// historyStore keeps recent conversation context per user, in memory.
// Context is advisory only; losing it on restart is acceptable.
type historyStore struct {
	mu sync.Mutex
	m  map[string][]exchange
}

func newHistoryStore() *historyStore {
	return &historyStore{m: make(map[string][]exchange)}
}

func (h *historyStore) append(userID string, e exchange) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	list := append(h.m[userID], e)
	if len(list) > maxStoredExchanges {
		list = list[len(list)-maxStoredExchanges:]
	}
	h.m[userID] = list
}

// promptContext formats the user's recent exchanges for prompt
// inclusion. Empty string when there is no history.
func (h *historyStore) promptContext(userID string) string {
	if userID == "" {
		return ""
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.m[userID]
	if len(list) == 0 {
		return ""
	}
	if len(list) > promptExchanges {
		list = list[len(list)-promptExchanges:]
	}

	var b strings.Builder
	b.WriteString("\nRecent conversation:\n")
	for i, e := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", e.User, e.Assistant)
	}
	return b.String()
}

// lastTopic returns the most recent identified topic in the user's
// last few exchanges, or "" when none matched.
func (h *historyStore) lastTopic(userID string) Topic {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.m[userID]
	if len(list) > 5 {
		list = list[len(list)-5:]
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Topic != "" {
			return list[i].Topic
		}
	}
	return ""
}

// known reports whether the user has any stored history.
func (h *historyStore) known(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.m[userID]
	return ok
}
