package slack

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"confluencebot/internal/bot"
)

var mentionRe = regexp.MustCompile(`<@[^>]+>`)

// Poster sends the reply back to a channel; *slack.Client satisfies it.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

type Handler struct {
	bot           *bot.Service
	poster        Poster
	signingSecret string
	botName       string
}

func NewHandler(svc *bot.Service, poster Poster, signingSecret, botName string) *Handler {
	return &Handler{
		bot:           svc,
		poster:        poster,
		signingSecret: signingSecret,
		botName:       botName,
	}
}

// HandleEvents is the Slack Events API entry point. Conversations are keyed
// by Slack user ID, so each user talks to their own bot state regardless of
// channel.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}

	if h.signingSecret != "" {
		sv, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
		if err != nil {
			http.Error(w, "bad signature headers", http.StatusBadRequest)
			return
		}
		if _, err = sv.Write(body); err != nil {
			http.Error(w, "signature mismatch", http.StatusUnauthorized)
			return
		}
		if err = sv.Ensure(); err != nil {
			http.Error(w, "signature mismatch", http.StatusUnauthorized)
			return
		}
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var cr slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			http.Error(w, "invalid challenge", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(cr.Challenge))
		return

	case slackevents.CallbackEvent:
		h.handleCallback(r, event.InnerEvent)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleCallback(r *http.Request, inner slackevents.EventsAPIInnerEvent) {
	switch ev := inner.Data.(type) {
	case *slackevents.MessageEvent:
		// Ignore our own and other bots' messages, and edits/joins etc.
		if ev.BotID != "" || ev.SubType != "" {
			return
		}
		h.respond(r, ev.User, ev.Channel, ev.Text)

	case *slackevents.AppMentionEvent:
		text := strings.TrimSpace(mentionRe.ReplaceAllString(ev.Text, ""))
		h.respond(r, ev.User, ev.Channel, text)
	}
}

func (h *Handler) respond(r *http.Request, userID, channel, text string) {
	reply := h.bot.Turn(r.Context(), userID, text)

	if _, _, err := h.poster.PostMessage(channel, slack.MsgOptionText(reply, false)); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to post reply")
	}
}

// Health reports liveness for load balancers and the Slack app setup check.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"bot":    h.botName + " is running!",
	})
}
