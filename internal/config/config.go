// Package config loads all runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Error reports a missing or malformed environment value. All such
// failures are fatal at startup.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

type Config struct {
	// Gemini settings
	GeminiAPIKey      string
	GeminiModel       string
	MaxGeminiRequests int // per-run request budget (0 = unlimited)

	// RSS settings
	SourcesPath string // optional YAML registry override
	MaxArticles int    // representative cap for the daily briefing
	WeeklyMin   int    // representative window for the weekly flow
	WeeklyMax   int
	StrictFetch bool // restore any-feed-failure-aborts behavior

	// SMTP settings (daily delivery)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	SMTPTo   []string

	// WordPress settings (weekly delivery)
	WPBaseURL     string
	WPUser        string
	WPAppPassword string
	WPCategoryID  int
	WPTagIDs      []int

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	Schedule       string // cron expression; empty means run once
	MonitorAddr    string // monitoring server address; empty disables it
}

// Load reads the environment with defaults applied. Malformed numeric
// values fail here; presence of flow-specific values is checked by
// ValidateDaily / ValidateWeekly.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiModel:       "gemini-1.5-flash",
		MaxGeminiRequests: 3,
		MaxArticles:       12,
		WeeklyMin:         12,
		WeeklyMax:         20,
		SMTPPort:          587,
		RequestTimeout:    30 * time.Second,
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	cfg.SourcesPath = os.Getenv("RSS_SOURCES_PATH")
	cfg.StrictFetch = os.Getenv("RSS_STRICT_FETCH") == "true"
	cfg.Debug = os.Getenv("DEBUG") == "true"
	cfg.Schedule = os.Getenv("BRIEFING_SCHEDULE")

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		port := os.Getenv("MONITORING_PORT")
		if port == "" {
			port = "8080"
		}
		cfg.MonitorAddr = ":" + port
	}

	var err error
	if cfg.MaxGeminiRequests, err = intEnv("MAX_GEMINI_REQUESTS", cfg.MaxGeminiRequests); err != nil {
		return nil, err
	}
	if cfg.MaxArticles, err = intEnv("RSS_MAX_ITEMS", cfg.MaxArticles); err != nil {
		return nil, err
	}
	if cfg.WeeklyMin, err = intEnv("WEEKLY_MIN_ITEMS", cfg.WeeklyMin); err != nil {
		return nil, err
	}
	if cfg.WeeklyMax, err = intEnv("WEEKLY_MAX_ITEMS", cfg.WeeklyMax); err != nil {
		return nil, err
	}
	if seconds, err := intEnv("REQUEST_TIMEOUT_SECONDS", int(cfg.RequestTimeout/time.Second)); err != nil {
		return nil, err
	} else if seconds > 0 {
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	cfg.SMTPTo = splitList(os.Getenv("SMTP_TO"))
	if cfg.SMTPPort, err = intEnv("SMTP_PORT", cfg.SMTPPort); err != nil {
		return nil, err
	}

	cfg.WPBaseURL = strings.TrimRight(os.Getenv("WP_BASE_URL"), "/")
	cfg.WPUser = os.Getenv("WP_USER")
	cfg.WPAppPassword = os.Getenv("WP_APP_PASSWORD")
	if cfg.WPCategoryID, err = intEnv("WP_CATEGORY_ID", 0); err != nil {
		return nil, err
	}
	if cfg.WPTagIDs, err = intListEnv("WP_TAG_IDS"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateDaily checks everything the daily email flow needs.
func (c *Config) ValidateDaily() error {
	if c.GeminiAPIKey == "" {
		return &Error{"GEMINI_API_KEY", "is required"}
	}
	if c.SMTPHost == "" {
		return &Error{"SMTP_HOST", "is required"}
	}
	if c.SMTPPort <= 0 {
		return &Error{"SMTP_PORT", "must be a positive number"}
	}
	if c.SMTPUser == "" {
		return &Error{"SMTP_USER", "is required"}
	}
	if c.SMTPPass == "" {
		return &Error{"SMTP_PASS", "is required"}
	}
	if c.SMTPFrom == "" {
		return &Error{"SMTP_FROM", "is required"}
	}
	if len(c.SMTPTo) == 0 {
		return &Error{"SMTP_TO", "is required"}
	}
	return nil
}

// ValidateWeekly checks everything the weekly WordPress flow needs.
func (c *Config) ValidateWeekly() error {
	if c.GeminiAPIKey == "" {
		return &Error{"GEMINI_API_KEY", "is required"}
	}
	if c.WPBaseURL == "" {
		return &Error{"WP_BASE_URL", "is required"}
	}
	if c.WPUser == "" {
		return &Error{"WP_USER", "is required"}
	}
	if c.WPAppPassword == "" {
		return &Error{"WP_APP_PASSWORD", "is required"}
	}
	if c.WPCategoryID <= 0 {
		return &Error{"WP_CATEGORY_ID", "must be a positive number"}
	}
	if c.WeeklyMin <= 0 || c.WeeklyMax < c.WeeklyMin {
		return &Error{"WEEKLY_MIN_ITEMS", "window is inverted"}
	}
	return nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{key, fmt.Sprintf("must be a number, got %q", raw)}
	}
	return val, nil
}

func intListEnv(key string) ([]int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range splitList(raw) {
		val, err := strconv.Atoi(part)
		if err != nil {
			return nil, &Error{key, fmt.Sprintf("must be comma-separated numbers, got %q", part)}
		}
		out = append(out, val)
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
