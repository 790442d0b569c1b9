package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"confluencebot/internal/ai"
	"confluencebot/internal/confluence"
	"confluencebot/internal/intent"
)

const (
	completionMaxTokens   = 512
	completionTemperature = 0.7
)

// turnInput carries everything the strategies need for one message.
type turnInput struct {
	text        string
	annotated   string // text plus the context-loaded note, backend-only
	intent      intent.Intent
	nameJustSet bool
	doc         *confluence.Document
}

// strategy is one fallback tier: it either yields a reply or passes.
type strategy func(ctx context.Context, conv *Conversation, in *turnInput) (string, bool)

// Responder produces a reply for every message, degrading from the remote
// backend through command results down to canned templates. It never fails
// outward.
type Responder struct {
	botName    string
	assembler  *Assembler
	backend    ai.Backend
	resolver   *confluence.Resolver
	strategies []strategy
	now        func() time.Time
}

// NewResponder wires the tier list once at construction: the remote tier only
// exists when a backend is configured, the command tier only when a resolver
// is.
func NewResponder(botName string, backend ai.Backend, resolver *confluence.Resolver, window int) *Responder {
	r := &Responder{
		botName:   botName,
		assembler: NewAssembler(botName, window, resolver),
		backend:   backend,
		resolver:  resolver,
		now:       time.Now,
	}

	if backend != nil {
		r.strategies = append(r.strategies, r.remote)
	}
	r.strategies = append(r.strategies, r.nameAck)
	if resolver != nil {
		r.strategies = append(r.strategies, r.commandResult)
	}
	r.strategies = append(r.strategies, r.templates)

	return r
}

// Generate runs the turn pipeline: apply name extraction once, resolve a page
// reference opportunistically, then walk the tiers until one answers. The
// caller holds the conversation lock.
func (r *Responder) Generate(ctx context.Context, conv *Conversation, text string) string {
	in := &turnInput{text: text, annotated: text, intent: intent.Classify(text)}

	if name, ok := intent.ExtractName(text); ok {
		if conv.ParticipantName != name {
			conv.ParticipantName = name
		}
		in.nameJustSet = true
	}

	if r.resolver != nil {
		if doc := r.resolver.ResolveReference(ctx, text); doc != nil {
			in.doc = doc
			conv.rememberDoc(doc.Key)
			// The note travels to the backend only, never into the transcript.
			in.annotated = text + fmt.Sprintf("\n[Context loaded from Confluence page: %s]", doc.Title)
		}
	}

	for _, s := range r.strategies {
		if reply, ok := s(ctx, conv, in); ok {
			return reply
		}
	}

	// The template tier always answers; this is unreachable.
	return templateReply(intent.Default, r.botName, conv.ParticipantName, r.now())
}

// Farewell returns a canned goodbye, personalized when the participant is
// known. The backend is never consulted for the exit line.
func (r *Responder) Farewell(conv *Conversation) string {
	return templateReply(intent.Goodbye, r.botName, conv.ParticipantName, r.now())
}

func (r *Responder) remote(ctx context.Context, conv *Conversation, in *turnInput) (string, bool) {
	payload := r.assembler.Build(conv, in.annotated, in.doc)

	reply, err := r.backend.Complete(ctx, payload, completionMaxTokens, completionTemperature)
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", conv.ID).
			Msg("backend failed, falling back to templates")
		return "", false
	}
	if strings.TrimSpace(reply) == "" {
		return "", false
	}
	return reply, true
}

func (r *Responder) nameAck(_ context.Context, conv *Conversation, in *turnInput) (string, bool) {
	if !in.nameJustSet {
		return "", false
	}
	return fmt.Sprintf("Nice to meet you, %s! How can I help you today?", conv.ParticipantName), true
}

// commandResult runs only as a fallback tier, so the search call happens
// solely when no higher tier already answered.
func (r *Responder) commandResult(ctx context.Context, _ *Conversation, in *turnInput) (string, bool) {
	switch {
	case in.intent == intent.LoadPage && in.doc != nil:
		return fmt.Sprintf("Loaded %q from space %s. Ask me anything about it!",
			in.doc.Title, in.doc.Space), true
	case in.intent == intent.SearchConfluence:
		hits := r.resolver.Search(ctx, searchQuery(in.text), "")
		if len(hits) == 0 {
			return "", false
		}
		var b strings.Builder
		b.WriteString("Here's what I found:")
		for i, hit := range hits {
			fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, hit.Title, hit.Space)
		}
		return b.String(), true
	}
	return "", false
}

func (r *Responder) templates(_ context.Context, conv *Conversation, in *turnInput) (string, bool) {
	return templateReply(in.intent, r.botName, conv.ParticipantName, r.now()), true
}

var searchStopWords = map[string]bool{
	"search": true, "find": true, "look": true, "up": true, "for": true,
	"the": true, "a": true, "an": true, "in": true, "on": true, "about": true,
	"confluence": true, "wiki": true, "page": true, "pages": true,
	"document": true, "documents": true, "me": true, "please": true,
}

// searchQuery strips command words so the full-text query carries only the
// topic terms.
func searchQuery(text string) string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, `.,!?"'`)
		if w != "" && !searchStopWords[w] {
			terms = append(terms, w)
		}
	}
	if len(terms) == 0 {
		return text
	}
	return strings.Join(terms, " ")
}
