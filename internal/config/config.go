package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from the environment and an
// optional .env file.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Cache    CacheConfig
	Log      LogConfig
	Printer  PrinterConfig
	Reports  ReportsConfig
	Grid     GridConfig
	Defaults DefaultsConfig
}

type AppConfig struct {
	Port     string
	Timezone string
}

type DatabaseConfig struct {
	Driver string // memory, sqlite or postgres
	DSN    string
}

type RabbitMQConfig struct {
	URL string // Empty disables event publishing
}

type CacheConfig struct {
	Driver        string // memory or redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string
}

type PrinterConfig struct {
	Type    string // none or network
	Address string
	Width   int
}

type ReportsConfig struct {
	TokenSecret       string
	TokenTTL          time.Duration
	PINAttemptsPerMin int
}

type GridConfig struct {
	Columns int
	Rows    int
}

// SlotsPerPage is the number of grid positions on one sales-screen page.
func (g GridConfig) SlotsPerPage() int {
	return g.Columns * g.Rows
}

type DefaultsConfig struct {
	TaxRate      string
	MorningStart string
	MorningEnd   string
	NightEnd     string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment variables: %v", err)
	}
	return FromViper(viper.GetViper())
}

// FromViper reads the configuration from v after applying defaults.
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "restopos.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 48)
	v.SetDefault("REPORT_TOKEN_SECRET", "change-this-secret-in-production")
	v.SetDefault("REPORT_TOKEN_TTL", "15m")
	v.SetDefault("PIN_ATTEMPTS_PER_MINUTE", 5)
	v.SetDefault("GRID_COLUMNS", 5)
	v.SetDefault("GRID_ROWS", 4)
	v.SetDefault("DEFAULT_TAX_RATE", "0")
	v.SetDefault("DEFAULT_MORNING_START", "05:00")
	v.SetDefault("DEFAULT_MORNING_END", "17:30")
	v.SetDefault("DEFAULT_NIGHT_END", "05:00")

	return &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Timezone: v.GetString("TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DB_DSN"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Cache: CacheConfig{
			Driver:        v.GetString("CACHE_DRIVER"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			TTL:           v.GetDuration("CACHE_TTL"),
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Reports: ReportsConfig{
			TokenSecret:       v.GetString("REPORT_TOKEN_SECRET"),
			TokenTTL:          v.GetDuration("REPORT_TOKEN_TTL"),
			PINAttemptsPerMin: v.GetInt("PIN_ATTEMPTS_PER_MINUTE"),
		},
		Grid: GridConfig{
			Columns: v.GetInt("GRID_COLUMNS"),
			Rows:    v.GetInt("GRID_ROWS"),
		},
		Defaults: DefaultsConfig{
			TaxRate:      v.GetString("DEFAULT_TAX_RATE"),
			MorningStart: v.GetString("DEFAULT_MORNING_START"),
			MorningEnd:   v.GetString("DEFAULT_MORNING_END"),
			NightEnd:     v.GetString("DEFAULT_NIGHT_END"),
		},
	}
}

// Location resolves the configured time zone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", c.App.Timezone, err)
		return time.Local
	}
	return loc
}
