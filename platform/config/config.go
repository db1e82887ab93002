// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// CacheConfig provides settings for the Redis dashboard cache.
type CacheConfig interface {
	GetRedisURL() string
}

// SchedulerConfig provides settings for the asynq refresh scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetQueueName() string
	GetRefreshInterval() time.Duration
}

// SheetsConfig provides settings for the published-CSV sheet readers.
type SheetsConfig interface {
	GetLeadCSVURL() string
	GetRentalCSVURL() string
}

// CalendarConfig provides settings for the Google Calendar reader.
type CalendarConfig interface {
	GetCalendarAPIKey() string
	GetCalendars() map[string]string
	IsCalendarEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	RedisURL        string
	QueueName       string
	RefreshInterval time.Duration
	CORSAllowAll    bool
	CORSOrigins     []string
	LeadCSVURL      string
	RentalCSVURL    string
	CalendarAPIKey  string
	Calendars       map[string]string
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// CacheConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetQueueName() string              { return c.QueueName }
func (c *Config) GetRefreshInterval() time.Duration { return c.RefreshInterval }

// SheetsConfig implementation
func (c *Config) GetLeadCSVURL() string   { return c.LeadCSVURL }
func (c *Config) GetRentalCSVURL() string { return c.RentalCSVURL }

// CalendarConfig implementation
func (c *Config) GetCalendarAPIKey() string       { return c.CalendarAPIKey }
func (c *Config) GetCalendars() map[string]string { return c.Calendars }
func (c *Config) IsCalendarEnabled() bool {
	return c.CalendarAPIKey != "" && len(c.Calendars) > 0
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	refreshMinutes := mustInt(getEnv("REFRESH_MINUTES", "15"))
	if refreshMinutes < 1 {
		refreshMinutes = 15
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		QueueName:       getEnv("ASYNQ_QUEUE", "dashboard"),
		RefreshInterval: time.Duration(refreshMinutes) * time.Minute,
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		LeadCSVURL:      getEnv("LEAD_CSV_URL", ""),
		RentalCSVURL:    getEnv("RENTAL_CSV_URL", ""),
		CalendarAPIKey:  getEnv("GCAL_API_KEY", ""),
		Calendars:       parseCalendars(getEnv("GCAL_CALENDARS", "")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.LeadCSVURL == "" || cfg.RentalCSVURL == "" {
		return nil, fmt.Errorf("LEAD_CSV_URL and RENTAL_CSV_URL are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

// parseCalendars parses "Location=calendarID;Location=calendarID" pairs.
func parseCalendars(value string) map[string]string {
	calendars := make(map[string]string)
	for _, pair := range strings.Split(value, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, id, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}
		calendars[name] = id
	}
	return calendars
}
