package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tak-online/internal/game"
)

type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	BoardSize       int           `yaml:"board_size"`
	MaxChatLength   int           `yaml:"max_chat_length"`
	MaxChatHistory  int           `yaml:"max_chat_history"`
	RoomIdleTimeout time.Duration `yaml:"room_idle_timeout"`
	JanitorSchedule string        `yaml:"janitor_schedule"`
	ArchivePath     string        `yaml:"archive_path"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
}

const envConfigFile = "TAK_CONFIG_FILE"

func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		BoardSize:       game.DefaultBoardSize,
		MaxChatLength:   500,
		MaxChatHistory:  200,
		RoomIdleTimeout: 30 * time.Minute,
		JanitorSchedule: "@every 1m",
		ArchivePath:     ":memory:",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Load layers defaults, the optional YAML file named by TAK_CONFIG_FILE and
// the environment, in that order.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.BoardSize = getenvInt("BOARD_SIZE", cfg.BoardSize)
	cfg.MaxChatLength = getenvInt("MAX_CHAT_LENGTH", cfg.MaxChatLength)
	cfg.MaxChatHistory = getenvInt("MAX_CHAT_HISTORY", cfg.MaxChatHistory)
	cfg.RoomIdleTimeout = getenvDuration("ROOM_IDLE_TIMEOUT", cfg.RoomIdleTimeout)
	cfg.JanitorSchedule = getenv("JANITOR_SCHEDULE", cfg.JanitorSchedule)
	// an explicitly empty ARCHIVE_PATH turns the archive off
	if v, ok := os.LookupEnv("ARCHIVE_PATH"); ok {
		cfg.ArchivePath = v
	}
	cfg.AllowedOrigins = getenvList("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if _, ok := game.ReserveFor(c.BoardSize); !ok {
		return fmt.Errorf("config: BOARD_SIZE=%d: %w", c.BoardSize, game.ErrInvalidBoardSize)
	}
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must not be empty")
	}
	if c.MaxChatLength < 0 || c.MaxChatHistory < 0 || c.RoomIdleTimeout < 0 {
		return errors.New("config: limits must not be negative")
	}
	return nil
}

// OriginAllowed reports whether a WebSocket handshake from origin may
// proceed. An empty allow list admits everyone.
func (c Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
