package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings loaded from an optional file and the environment.
type Config struct {
	Env     string  `mapstructure:"env"` // local, production
	TPS     int     `mapstructure:"tps"` // simulation ticks per second
	Window  Window  `mapstructure:"window"`
	Physics Physics `mapstructure:"physics"`
	Camera  Camera  `mapstructure:"camera"`
	Data    Data    `mapstructure:"data"`
}

type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type Physics struct {
	Gravity   float64 `mapstructure:"gravity"`
	Speed     float64 `mapstructure:"speed"`
	JumpSpeed float64 `mapstructure:"jump_speed"`
}

type Camera struct {
	Lead float64 `mapstructure:"lead"` // player's distance from the left screen edge
}

// Data points at level and question files on disk. Empty paths use the
// copies embedded in the binary.
type Data struct {
	Level     string `mapstructure:"level"`
	Questions string `mapstructure:"questions"`
}

// Load reads config/config.yaml if present, then applies PLATFORMER_*
// environment overrides (PLATFORMER_PHYSICS_GRAVITY and so on).
func Load() (*Config, error) {
	return load("./config")
}

func load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("env", "local")
	v.SetDefault("tps", 60)
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Retro Math Platformer")
	v.SetDefault("physics.gravity", 0.8)
	v.SetDefault("physics.speed", 5)
	v.SetDefault("physics.jump_speed", 15)
	v.SetDefault("camera.lead", 100)
	v.SetDefault("data.level", "")
	v.SetDefault("data.questions", "")

	v.SetEnvPrefix("platformer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.Speed <= 0 || c.Physics.JumpSpeed <= 0:
		return fmt.Errorf("%w: speed %v and jump_speed %v must be positive",
			ErrInvalidConfig, c.Physics.Speed, c.Physics.JumpSpeed)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
