package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPersona = "You are a thoughtful software engineer who shares short, " +
	"practical takes on technology trends with your professional network. " +
	"You write in first person, avoid buzzwords and emoji, and end with a " +
	"question or concrete takeaway."

// Config holds every knob the bot reads, loaded once at startup and
// passed by reference. Nothing here is mutated after Load returns.
type Config struct {
	OpenAIKey   string
	OpenAIModel string

	LinkedInToken     string
	LinkedInTokenFile string
	PersonURN         string

	HistoryFile string
	DatabaseURL string

	Queries     []string
	MaxPerQuery int

	Persona      string
	MaxPostChars int

	RecencyWindowDays int

	LogPath       string
	LogLevel      string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
}

// Load reads .env (if present) and the environment. It does not
// validate provider credentials; each client reports its own
// authentication failures when first used.
func Load() (*Config, error) {
	// A missing .env is fine when everything comes from the environment,
	// e.g. in CI.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIKey:   os.Getenv("OPENAI_KEY"),
		OpenAIModel: getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),

		LinkedInToken:     os.Getenv("LINKEDIN_ACCESS_TOKEN"),
		LinkedInTokenFile: getEnvWithDefault("LINKEDIN_TOKEN_FILE", "linkedin_tokens.json"),
		PersonURN:         os.Getenv("LINKEDIN_PERSON_URN"),

		HistoryFile: getEnvWithDefault("HISTORY_FILE", "history.jsonl"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		Queries:     splitQueries(getEnvWithDefault("SEARCH_QUERIES", "artificial intelligence,software engineering,developer productivity,open source")),
		MaxPerQuery: getEnvInt("MAX_PER_QUERY", 10),

		Persona:      getEnvWithDefault("PERSONA_PROMPT", defaultPersona),
		MaxPostChars: getEnvInt("POST_MAX_CHARS", 1200),

		RecencyWindowDays: getEnvInt("RECENCY_WINDOW_DAYS", 120),

		LogPath:       getEnvWithDefault("LOG_PATH", "trendpost.log"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "INFO"),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 30),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_KEY is not set")
	}
	if len(cfg.Queries) == 0 {
		return nil, fmt.Errorf("SEARCH_QUERIES is empty")
	}

	return cfg, nil
}

func splitQueries(s string) []string {
	var queries []string
	for _, q := range strings.Split(s, ",") {
		q = strings.TrimSpace(q)
		if q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
