package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./data/quitzone.db"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	DBMaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns    int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	GroupID         string `envconfig:"GROUP_ID"`
	BotPhone        string `envconfig:"BOT_PHONE"`
	ReplyDelayMinMs int    `envconfig:"REPLY_DELAY_MIN_MS" default:"0"` // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int    `envconfig:"REPLY_DELAY_MAX_MS" default:"0"` // 0 = use min as fixed
	ShowTyping      bool   `envconfig:"SHOW_TYPING" default:"false"`

	HTTPAddr string `envconfig:"HTTP_ADDR"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	Timezone     string `envconfig:"APP_TIMEZONE" default:"Asia/Jakarta"`
	ReminderCron string `envconfig:"REMINDER_CRON" default:"0 * * * *"`

	DefaultCigarettePrice float64 `envconfig:"DEFAULT_CIGARETTE_PRICE" default:"1500"`
	DefaultCurrency       string  `envconfig:"DEFAULT_CURRENCY" default:"Rp"`
	GrowthDays            int     `envconfig:"GROWTH_DAYS" default:"60"`
	DefaultReminderHour   int     `envconfig:"DEFAULT_REMINDER_HOUR" default:"20"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using defaults/environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.ReplyDelayMinMs < 0 || c.ReplyDelayMaxMs < 0 {
		return fmt.Errorf("reply delays must not be negative")
	}
	if c.DefaultReminderHour < 0 || c.DefaultReminderHour > 23 {
		return fmt.Errorf("DEFAULT_REMINDER_HOUR must be between 0 and 23, got %d", c.DefaultReminderHour)
	}
	if c.GrowthDays <= 0 {
		return fmt.Errorf("GROWTH_DAYS must be positive, got %d", c.GrowthDays)
	}
	if c.DefaultCigarettePrice < 0 {
		return fmt.Errorf("DEFAULT_CIGARETTE_PRICE must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves APP_TIMEZONE. Calendar days are cut in this zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
