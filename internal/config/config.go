package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"schedbot/internal/domain"
	"schedbot/pkg/tz"
)

const (
	defaultDatabaseURL   = "sqlite://events.db"
	defaultCommandPrefix = "!"
	defaultCheckInterval = 60 * time.Second
	defaultSendTimeout   = 10 * time.Second
	defaultSendRate      = 5
	defaultTimezone      = "UTC"
	defaultLocale        = "en"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
)

type Config struct {
	Token         string
	DatabaseURL   string
	CommandPrefix string
	CheckInterval time.Duration
	SendTimeout   time.Duration
	SendRate      int
	Timezone      string
	Location      *time.Location
	Locale        string
	LogLevel      string
	LogFormat     string
	MetricsAddr   string
}

// LoadDotEnv charge les fichiers .env (par défaut ".env") dans l'environnement du processus.
// Les variables déjà définies sont conservées et un fichier absent n'est pas une erreur.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, systemd, CI).
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return domain.Configuration("invalid_dotenv",
				fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfigValue, file, err))
		}
	}
	return nil
}

// Load charge la configuration depuis les variables d'environnement et la valide.
// Le fichier .env est lu une seule fois au démarrage, voir LoadDotEnv.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup construit la Config à partir de lookup, qui se comporte comme os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Token:         get("DISCORD_TOKEN", ""),
		DatabaseURL:   get("DATABASE_URL", defaultDatabaseURL),
		CommandPrefix: get("COMMAND_PREFIX", defaultCommandPrefix),
		Timezone:      get("REFERENCE_TIMEZONE", defaultTimezone),
		Locale:        get("LOCALE", defaultLocale),
		LogLevel:      get("LOG_LEVEL", defaultLogLevel),
		LogFormat:     get("LOG_FORMAT", defaultLogFormat),
		MetricsAddr:   get("METRICS_ADDR", ""),
	}

	var err error
	if cfg.CheckInterval, err = parseDuration("CHECK_INTERVAL", get("CHECK_INTERVAL", ""), defaultCheckInterval); err != nil {
		return nil, err
	}
	if cfg.SendTimeout, err = parseDuration("SEND_TIMEOUT", get("SEND_TIMEOUT", ""), defaultSendTimeout); err != nil {
		return nil, err
	}
	if cfg.SendRate, err = parseInt("SEND_RATE_PER_SEC", get("SEND_RATE_PER_SEC", ""), defaultSendRate); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if c.Token == "" {
		return domain.Configuration("missing_token",
			fmt.Errorf("%w: DISCORD_TOKEN is required", domain.ErrMissingConfigValue))
	}
	if strings.ContainsAny(c.CommandPrefix, " \t\n") {
		return invalid("COMMAND_PREFIX", c.CommandPrefix, "must not contain whitespace")
	}
	if c.CheckInterval < time.Second {
		return invalid("CHECK_INTERVAL", c.CheckInterval.String(), "must be at least 1s")
	}
	if c.SendTimeout <= 0 {
		return invalid("SEND_TIMEOUT", c.SendTimeout.String(), "must be positive")
	}
	if c.SendRate <= 0 {
		return invalid("SEND_RATE_PER_SEC", strconv.Itoa(c.SendRate), "must be positive")
	}
	if !strings.Contains(c.DatabaseURL, "://") {
		return invalid("DATABASE_URL", c.DatabaseURL, "expected postgres://... or sqlite://...")
	}

	loc, err := tz.Load(c.Timezone)
	if err != nil {
		return invalid("REFERENCE_TIMEZONE", c.Timezone, err.Error())
	}
	c.Location = loc
	return nil
}

func invalid(key, value, reason string) error {
	return domain.Configuration("invalid_"+strings.ToLower(key),
		fmt.Errorf("%w: %s=%q %s", domain.ErrInvalidConfigValue, key, value, reason))
}

func parseDuration(key, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		// Un nombre seul est exprimé en secondes.
		if n, nerr := strconv.Atoi(raw); nerr == nil {
			return time.Duration(n) * time.Second, nil
		}
		return 0, invalid(key, raw, "is not a duration")
	}
	return d, nil
}

func parseInt(key, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(key, raw, "is not an integer")
	}
	return n, nil
}
