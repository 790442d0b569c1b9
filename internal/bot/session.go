package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const emptyInputReply = "I didn't catch that. Could you say something?"

// Service owns the per-identity conversations and is the only entry point the
// CLI and webhook glue call. Conversations are created lazily and live for
// the process lifetime.
type Service struct {
	botName           string
	responder         *Responder
	store             TranscriptStore
	llmEnabled        bool
	confluenceEnabled bool

	mu            sync.Mutex
	conversations map[string]*Conversation
}

func NewService(botName string, responder *Responder, store TranscriptStore, llmEnabled, confluenceEnabled bool) *Service {
	return &Service{
		botName:           botName,
		responder:         responder,
		store:             store,
		llmEnabled:        llmEnabled,
		confluenceEnabled: confluenceEnabled,
		conversations:     make(map[string]*Conversation),
	}
}

// Turn records the user message, generates the reply, pairs it onto the turn
// and returns it. Blank input gets the fixed prompt without being recorded.
// The per-conversation lock serializes turns for one identity; different
// identities proceed concurrently.
func (s *Service) Turn(ctx context.Context, convID, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return emptyInputReply
	}

	conv := s.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	log.Debug().Str("conversation_id", convID).Str("text", text).Msg("turn started")

	conv.Turns = append(conv.Turns, Turn{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		User:      text,
	})

	reply := s.responder.Generate(ctx, conv, text)
	conv.Turns[len(conv.Turns)-1].Bot = reply

	return reply
}

// Farewell returns a goodbye without recording a turn or calling the
// backend; the CLI uses it on exit.
func (s *Service) Farewell(convID string) string {
	conv := s.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return s.responder.Farewell(conv)
}

// Snapshot serializes the conversation point-in-time.
func (s *Service) Snapshot(convID string) *Transcript {
	conv := s.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	t := &Transcript{
		BotName:           s.botName,
		UserName:          conv.ParticipantName,
		Conversation:      make([]TranscriptTurn, 0, len(conv.Turns)),
		LLMEnabled:        s.llmEnabled,
		ConfluenceEnabled: s.confluenceEnabled,
	}
	for _, turn := range conv.Turns {
		t.Conversation = append(t.Conversation, TranscriptTurn{
			Timestamp: turn.Timestamp.Format(transcriptTimeFormat),
			User:      turn.User,
			Bot:       turn.Bot,
		})
	}
	return t
}

// SaveTranscript writes the snapshot through the store and returns the file
// name used.
func (s *Service) SaveTranscript(convID, filename string) (string, error) {
	return s.store.Save(s.Snapshot(convID), filename)
}

// Clear resets history, participant name and document references for one
// identity.
func (s *Service) Clear(convID string) {
	conv := s.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.Turns = nil
	conv.ParticipantName = ""
	conv.DocRefs = nil
}

// HasHistory reports whether any turns were recorded for the identity.
func (s *Service) HasHistory(convID string) bool {
	conv := s.conversation(convID)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return len(conv.Turns) > 0
}

func (s *Service) conversation(id string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		conv = &Conversation{ID: id}
		s.conversations[id] = conv
		log.Info().Str("conversation_id", id).Msg("conversation created")
	}
	return conv
}
