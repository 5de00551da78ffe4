package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Mshel/snakepilot/internal/game"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const HostKeyPathEnv = "SNAKEPILOT_HOST_KEY_PATH"

var ErrInvalid = errors.New("invalid config")

// Config is the root configuration structure
type Config struct {
	Seed      int64           `yaml:"seed"` // 0 seeds from the clock
	Board     BoardConfig     `yaml:"board"`
	Tick      TickConfig      `yaml:"tick"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// BoardConfig holds the default board and the largest one a player may ask for
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// TickConfig holds the frame periods with and without autopilot
type TickConfig struct {
	Manual    time.Duration `yaml:"manual"`
	Autopilot time.Duration `yaml:"autopilot"`
}

// AutopilotConfig selects the planner
type AutopilotConfig struct {
	Enabled bool   `yaml:"enabled"`
	Script  string `yaml:"script"` // Lua strategy, empty for the built-in planner
}

// ServerConfig defines the ssh front end
type ServerConfig struct {
	Host                 string `yaml:"host"`
	Port                 string `yaml:"port"`
	HostKeyPath          string `yaml:"host_key_path"`
	MaxConnectionsPerIP  int    `yaml:"max_connections_per_ip"`
	ShutdownGraceSeconds int    `yaml:"shutdown_grace_seconds"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Board.Width == 0 {
		cfg.Board.Width = 40
	}
	if cfg.Board.Height == 0 {
		cfg.Board.Height = 20
	}
	if cfg.Board.MaxWidth == 0 {
		cfg.Board.MaxWidth = 200
	}
	if cfg.Board.MaxHeight == 0 {
		cfg.Board.MaxHeight = 100
	}
	if cfg.Tick.Manual == 0 {
		cfg.Tick.Manual = 100 * time.Millisecond
	}
	if cfg.Tick.Autopilot == 0 {
		cfg.Tick.Autopilot = 30 * time.Millisecond
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "6996"
	}
	if cfg.Server.HostKeyPath == "" {
		cfg.Server.HostKeyPath = os.Getenv(HostKeyPathEnv)
	}
	if cfg.Server.HostKeyPath == "" {
		cfg.Server.HostKeyPath = ".ssh/snakepilot_ed25519"
	}
	if cfg.Server.MaxConnectionsPerIP == 0 {
		cfg.Server.MaxConnectionsPerIP = 2
	}
	if cfg.Server.ShutdownGraceSeconds == 0 {
		cfg.Server.ShutdownGraceSeconds = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// BoardSize is the default board as a game.Size
func (c *Config) BoardSize() game.Size {
	return game.Size{Width: c.Board.Width, Height: c.Board.Height}
}

// Validate checks the values defaults cannot repair
func (c *Config) Validate() error {
	if err := c.CheckBoard(c.BoardSize()); err != nil {
		return fmt.Errorf("%w: board: %w", ErrInvalid, err)
	}
	if c.Tick.Manual < 0 || c.Tick.Autopilot < 0 {
		return fmt.Errorf("%w: tick periods must be positive", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	if c.Server.MaxConnectionsPerIP < 0 {
		return fmt.Errorf("%w: server.max_connections_per_ip must be positive", ErrInvalid)
	}
	return nil
}

// CheckBoard accepts sizes the game can start on and that fit the configured maximum
func (c *Config) CheckBoard(size game.Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	if size.Width > c.Board.MaxWidth || size.Height > c.Board.MaxHeight {
		return fmt.Errorf("board %s larger than %dx%d", size, c.Board.MaxWidth, c.Board.MaxHeight)
	}
	return nil
}

// NewLogger builds the logger described by c. Without a file it writes to
// fallback. The returned close func releases the file.
func (c LogConfig) NewLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	out, closer := fallback, func() error { return nil }
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", c.File, err)
		}
		out, closer = f, f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "snakepilot",
	})
	return logger, closer, nil
}
