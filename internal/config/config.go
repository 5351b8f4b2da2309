package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	Locale         string `env:"GLOSS_LOCALE" envDefault:"en"`
	FallbackLocale string `env:"GLOSS_FALLBACK_LOCALE" envDefault:"en"`
	CatalogDir     string `env:"GLOSS_CATALOG_DIR"`
	MaxDepth       int    `env:"GLOSS_MAX_DEPTH" envDefault:"32"`
	LogLevel       string `env:"GLOSS_LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"GLOSS_LOG_FORMAT" envDefault:"console"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	Token          string `env:"TOKEN"`
	GuildID        string `env:"GUILD_ID"`
}

// Load reads configuration from the environment, after an optional .env file,
// and validates it.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateBot checks the settings the Discord adapter needs on top of validate.
func (c *Config) ValidateBot() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required to run the bot")
	}
	for _, r := range c.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
		}
	}
	return nil
}

// validate normalises locales and checks every rule on the loaded configuration.
func (c *Config) validate() error {
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"GLOSS_LOCALE", &c.Locale},
		{"GLOSS_FALLBACK_LOCALE", &c.FallbackLocale},
	} {
		tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(*field.value), "_", "-"))
		if err != nil {
			return fmt.Errorf("config: %s invalid (%q): %w", field.name, *field.value, err)
		}
		*field.value = tag.String()
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("config: GLOSS_MAX_DEPTH must be >= 0, got %d", c.MaxDepth)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: GLOSS_LOG_LEVEL must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: GLOSS_LOG_FORMAT must be console or json; got %q", c.LogFormat)
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// The database catalog source is optional.
		return nil
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}

	return nil
}
