package cmd

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"confluencebot/internal/ai"
	"confluencebot/internal/bot"
	"confluencebot/internal/config"
	"confluencebot/internal/confluence"
	"confluencebot/internal/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "confluencebot",
	Short:        "Confluence-aware chat bot",
	Long:         "A chat bot that answers from canned responses or a hosted LLM,\nenriched with content pulled from a Confluence wiki.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	_ = godotenv.Load()
	cfg = config.Load()
}

// buildService wires the whole pipeline from config. Missing credentials
// disable tiers, they never fail startup.
func buildService(console bool) *bot.Service {
	logger.Init(cfg.LogLevel, console)

	var backend ai.Backend
	if cfg.AIEnabled() {
		backend = ai.NewOpenAIClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Info().Str("base_url", cfg.AIBaseURL).Msg("generation backend enabled")
	} else {
		log.Info().Msg("no API key configured, template responses only")
	}

	var resolver *confluence.Resolver
	if cfg.ConfluenceEnabled() {
		client := confluence.NewClient(cfg.ConfluenceURL, cfg.ConfluenceUsername, cfg.ConfluencePassword)
		resolver = confluence.NewResolver(client, cfg.ConfluenceSpaces)
		checkConfluence(client)
	} else {
		log.Info().Msg("Confluence not configured, retrieval disabled")
	}

	responder := bot.NewResponder(cfg.BotName, backend, resolver, cfg.HistoryWindow)
	store := bot.NewFileStore(".")

	return bot.NewService(cfg.BotName, responder, store, backend != nil, resolver != nil)
}

// checkConfluence verifies connectivity at startup; failures are logged and
// the bot still starts, degrading retrieval to cache misses.
func checkConfluence(client *confluence.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := client.CurrentUser(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Confluence connectivity check failed")
		return
	}
	log.Info().Str("user", user.DisplayName).Msg("connected to Confluence")

	spaces, err := client.Spaces(ctx, 5)
	if err != nil {
		return
	}
	for _, s := range spaces {
		log.Info().Str("key", s.Key).Str("name", s.Name).Msg("accessible space")
	}
}
