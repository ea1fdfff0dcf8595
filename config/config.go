package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	URL    string
	Schema string
}

func (c DatabaseConfig) IsConfigured() bool {
	return c.URL != ""
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func (c GeminiConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

func (c SpotifyConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

func (c GmailConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

type SearchConfig struct {
	GoogleAPIKey   string
	GoogleEngineID string
}

// HasGoogle reports whether Google Custom Search is usable. DuckDuckGo needs
// no credentials, so search always works.
func (c SearchConfig) HasGoogle() bool {
	return c.GoogleAPIKey != "" && c.GoogleEngineID != ""
}

type ScraperConfig struct {
	ExpenseTrackerURL string
}

type AppConfig struct {
	Port               string
	CORSAllowedOrigins string
	Environment        string
	SlackAlertWebhook  string
	UseStrictConfig    bool

	Database DatabaseConfig
	Gemini   GeminiConfig
	Spotify  SpotifyConfig
	Gmail    GmailConfig
	Search   SearchConfig
	Scraper  ScraperConfig
}

// LoadConfig reads configuration from the environment, with .env support for
// local development. In strict mode every optional integration must be fully
// configured; otherwise missing integrations degrade with a warning.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("📋 No .env file found, using environment variables")
	}

	cfg := &AppConfig{
		Port:               getEnvOrDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvOrDefault("ENVIRONMENT", "development"),
		SlackAlertWebhook:  os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		UseStrictConfig:    os.Getenv("USE_STRICT_CONFIG") == "true",
		Database: DatabaseConfig{
			URL:    os.Getenv("DATABASE_URL"),
			Schema: getEnvOrDefault("DATABASE_SCHEMA", "jarvis"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
		},
		Gmail: GmailConfig{
			ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
			ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
		},
		Search: SearchConfig{
			GoogleAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
			GoogleEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		},
		Scraper: ScraperConfig{
			ExpenseTrackerURL: getEnvOrDefault("EXPENSE_TRACKER_URL", "http://localhost:3000"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	type integration struct {
		name       string
		configured bool
	}
	integrations := []integration{
		{"database", c.Database.IsConfigured()},
		{"gemini", c.Gemini.IsConfigured()},
		{"spotify", c.Spotify.IsConfigured()},
		{"gmail", c.Gmail.IsConfigured()},
	}

	for _, it := range integrations {
		if it.configured {
			log.Printf("✅ %s integration configured", it.name)
			continue
		}
		if c.UseStrictConfig {
			return fmt.Errorf("strict config: %s integration is not configured", it.name)
		}
		log.Printf("⚠️ %s integration not configured, running degraded", it.name)
	}

	if c.Search.HasGoogle() {
		log.Printf("✅ Google search configured")
	} else {
		log.Printf("⚠️ Google search not configured, using DuckDuckGo")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
