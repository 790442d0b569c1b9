package bot

import (
	"sync"
	"time"
)

// Turn is one recorded exchange. Bot stays empty between recording the user
// message and pairing the reply; the conversation lock makes that window
// unobservable.
type Turn struct {
	ID        string
	Timestamp time.Time
	User      string
	Bot       string
}

// Conversation is the per-identity state: history, the known participant
// name, and the ordered list of document cache keys this conversation has
// referenced (most recent last).
type Conversation struct {
	ID              string
	ParticipantName string
	Turns           []Turn
	DocRefs         []string

	mu sync.Mutex
}

// rememberDoc moves key to the end of DocRefs, appending it if new.
func (c *Conversation) rememberDoc(key string) {
	for i, k := range c.DocRefs {
		if k == key {
			c.DocRefs = append(append(c.DocRefs[:i:i], c.DocRefs[i+1:]...), key)
			return
		}
	}
	c.DocRefs = append(c.DocRefs, key)
}

const transcriptTimeFormat = "2006-01-02 15:04:05"

// Transcript is the write-once snapshot of a conversation.
type Transcript struct {
	BotName           string           `json:"bot_name"`
	UserName          string           `json:"user_name"`
	Conversation      []TranscriptTurn `json:"conversation"`
	LLMEnabled        bool             `json:"llm_enabled"`
	ConfluenceEnabled bool             `json:"confluence_enabled"`
}

type TranscriptTurn struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Bot       string `json:"bot"`
}
