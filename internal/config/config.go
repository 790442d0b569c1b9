package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	deepseekBaseURL      = "https://api.deepseek.com"
	deepseekDefaultModel = "deepseek-chat"
)

type Config struct {
	BotName       string
	HistoryWindow int

	// Generation backend. Empty APIKey means the backend is disabled and the
	// bot answers from templates only.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// Confluence document source. Empty URL or username disables retrieval.
	ConfluenceURL      string
	ConfluenceUsername string
	ConfluencePassword string
	ConfluenceSpaces   []string

	Host     string
	Port     string
	LogLevel string

	SlackBotToken      string
	SlackSigningSecret string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Load reads all env vars and builds the config. DEEPSEEK_API_KEY takes
// precedence over OPENAI_API_KEY; both drive the same OpenAI-compatible client,
// only the base URL and default model differ.
func Load() *Config {
	cfg := &Config{
		BotName:       getEnv("BOT_NAME", "ConfluenceBot"),
		HistoryWindow: getIntEnv("HISTORY_WINDOW", 10),

		ConfluenceURL:      strings.TrimRight(os.Getenv("CONFLUENCE_URL"), "/"),
		ConfluenceUsername: os.Getenv("CONFLUENCE_USERNAME"),
		ConfluencePassword: os.Getenv("CONFLUENCE_PASSWORD"),

		Host:     getEnv("HOST", "0.0.0.0"),
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
	}

	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		cfg.AIAPIKey = key
		cfg.AIBaseURL = getEnv("DEEPSEEK_BASE_URL", deepseekBaseURL)
		cfg.AIModel = getEnv("AI_MODEL", deepseekDefaultModel)
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AIAPIKey = key
		cfg.AIBaseURL = os.Getenv("OPENAI_BASE_URL")
		cfg.AIModel = os.Getenv("AI_MODEL") // client falls back to its default
	}

	for _, s := range strings.Split(os.Getenv("CONFLUENCE_SPACES"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.ConfluenceSpaces = append(cfg.ConfluenceSpaces, s)
		}
	}

	return cfg
}

// AIEnabled reports whether a generation backend credential is present.
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// ConfluenceEnabled reports whether the document source is configured.
func (c *Config) ConfluenceEnabled() bool {
	return c.ConfluenceURL != "" && c.ConfluenceUsername != "" && c.ConfluencePassword != ""
}
