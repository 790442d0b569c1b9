package bot

import (
	"fmt"

	"confluencebot/internal/ai"
	"confluencebot/internal/confluence"
)

const (
	defaultHistoryWindow = 10
	directDocBudget      = 2000
	cachedDocBudget      = 500
	cachedDocCount       = 3
)

// Assembler builds the bounded context payload for one turn. Construction is
// deterministic given identical conversation state and cache contents.
type Assembler struct {
	botName  string
	window   int
	resolver *confluence.Resolver // nil when retrieval is disabled
}

func NewAssembler(botName string, window int, resolver *confluence.Resolver) *Assembler {
	if window <= 0 {
		window = defaultHistoryWindow
	}
	return &Assembler{botName: botName, window: window, resolver: resolver}
}

// Build produces the ordered payload: the fixed system instruction, identity
// and document excerpt blocks, the most recent window of history in
// chronological order, then the new message.
func (a *Assembler) Build(conv *Conversation, text string, direct *confluence.Document) []ai.Message {
	msgs := []ai.Message{{Role: ai.RoleSystem, Text: systemPrompt(a.botName)}}

	if conv.ParticipantName != "" {
		msgs = append(msgs, ai.Message{
			Role: ai.RoleSystem,
			Text: fmt.Sprintf("The user's name is %s.", conv.ParticipantName),
		})
	}

	if direct != nil {
		msgs = append(msgs, ai.Message{
			Role: ai.RoleSystem,
			Text: fmt.Sprintf("Content of Confluence page %q (space %s):\n%s",
				direct.Title, direct.Space, truncate(direct.Content, directDocBudget)),
		})
	}

	msgs = append(msgs, a.cachedExcerpts(conv, direct)...)

	// The turn being processed is already recorded with an empty reply; it
	// enters the payload as the final block, not as history.
	turns := conv.Turns
	if n := len(turns); n > 0 && turns[n-1].Bot == "" {
		turns = turns[:n-1]
	}

	start := len(turns) - a.window
	if start < 0 {
		start = 0
	}
	for _, t := range turns[start:] {
		msgs = append(msgs, ai.Message{Role: ai.RoleUser, Text: t.User})
		if t.Bot != "" {
			msgs = append(msgs, ai.Message{Role: ai.RoleAssistant, Text: t.Bot})
		}
	}

	return append(msgs, ai.Message{Role: ai.RoleUser, Text: text})
}

// cachedExcerpts adds short excerpts of up to three most recently referenced
// documents, skipping the directly referenced one.
func (a *Assembler) cachedExcerpts(conv *Conversation, direct *confluence.Document) []ai.Message {
	if a.resolver == nil {
		return nil
	}

	var out []ai.Message
	for i := len(conv.DocRefs) - 1; i >= 0 && len(out) < cachedDocCount; i-- {
		key := conv.DocRefs[i]
		if direct != nil && key == direct.Key {
			continue
		}
		doc, ok := a.resolver.Cached(key)
		if !ok {
			continue
		}
		out = append(out, ai.Message{
			Role: ai.RoleSystem,
			Text: fmt.Sprintf("Excerpt from recently viewed page %q:\n%s",
				doc.Title, truncate(doc.Content, cachedDocBudget)),
		})
	}
	return out
}

// truncate is a hard character cap, not token-aware.
func truncate(s string, budget int) string {
	r := []rune(s)
	if len(r) <= budget {
		return s
	}
	return string(r[:budget])
}
