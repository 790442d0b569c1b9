package cmd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	slackapi "github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"confluencebot/internal/slack"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Slack events webhook server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if cfg.SlackBotToken == "" || cfg.SlackSigningSecret == "" {
		return errors.New("SLACK_BOT_TOKEN and SLACK_SIGNING_SECRET must be set")
	}

	svc := buildService(false)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Slack-Signature", "X-Slack-Request-Timestamp"},
	}))

	handler := slack.NewHandler(svc, slackapi.New(cfg.SlackBotToken), cfg.SlackSigningSecret, cfg.BotName)
	slack.RegisterRoutes(r, handler)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("webhook URL: /slack/events, health: /health")
	log.Info().Str("addr", addr).Msgf("%s is listening", cfg.BotName)

	return http.ListenAndServe(addr, r)
}
