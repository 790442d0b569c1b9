package slack_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confluencebot/internal/bot"
	slackhandler "confluencebot/internal/slack"
)

type fakePoster struct {
	channels []string
	calls    int
}

func (f *fakePoster) PostMessage(channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	f.calls++
	f.channels = append(f.channels, channelID)
	return channelID, "", nil
}

func newTestHandler(t *testing.T) (*slackhandler.Handler, *fakePoster) {
	t.Helper()
	responder := bot.NewResponder("TestBot", nil, nil, 10)
	svc := bot.NewService("TestBot", responder, bot.NewFileStore(t.TempDir()), false, false)
	poster := &fakePoster{}
	return slackhandler.NewHandler(svc, poster, "", "TestBot"), poster
}

func TestURLVerificationChallenge(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"type":"url_verification","challenge":"abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", rec.Body.String())
}

func TestMessageEventGetsReply(t *testing.T) {
	h, poster := newTestHandler(t)

	body := `{"type":"event_callback","event":{"type":"message","user":"U123","text":"hello","channel":"C42"}}`
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, poster.calls)
	assert.Equal(t, "C42", poster.channels[0])
}

func TestBotMessagesIgnored(t *testing.T) {
	h, poster := newTestHandler(t)

	body := `{"type":"event_callback","event":{"type":"message","bot_id":"B1","text":"hi","channel":"C42"}}`
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, poster.calls)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
