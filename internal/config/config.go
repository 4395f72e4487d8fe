package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. FOLIO_SERVER_ADDR.
const EnvPrefix = "FOLIO"

// Config holds the whole application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Particles ParticlesConfig `mapstructure:"particles" yaml:"particles"`
	Canvas    CanvasConfig    `mapstructure:"canvas" yaml:"canvas"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
	Contact   ContactConfig   `mapstructure:"contact" yaml:"contact"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Content   ContentConfig   `mapstructure:"content" yaml:"content"`
}

// LoggerConfig controls zap and log file rotation.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ParticlesConfig tunes the particle field.
type ParticlesConfig struct {
	AreaPerParticle float64 `mapstructure:"area_per_particle" yaml:"area_per_particle"`
	MaxSpeed        float64 `mapstructure:"max_speed" yaml:"max_speed"`
	RadiusMin       float64 `mapstructure:"radius_min" yaml:"radius_min"`
	RadiusMax       float64 `mapstructure:"radius_max" yaml:"radius_max"`
	OpacityMin      float64 `mapstructure:"opacity_min" yaml:"opacity_min"`
	OpacityMax      float64 `mapstructure:"opacity_max" yaml:"opacity_max"`
	LinkDistance    float64 `mapstructure:"link_distance" yaml:"link_distance"`
	LinkAlpha       float64 `mapstructure:"link_alpha" yaml:"link_alpha"`
	RepelRadius     float64 `mapstructure:"repel_radius" yaml:"repel_radius"`
	RepelStrength   float64 `mapstructure:"repel_strength" yaml:"repel_strength"`
	Color           string  `mapstructure:"color" yaml:"color"`
	FPS             int     `mapstructure:"fps" yaml:"fps"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// CanvasConfig tunes the braille rasteriser.
type CanvasConfig struct {
	Gamma      float64 `mapstructure:"gamma" yaml:"gamma"`
	Threshold  float64 `mapstructure:"threshold" yaml:"threshold"`
	Background string  `mapstructure:"background" yaml:"background"`
	LabelColor string  `mapstructure:"label_color" yaml:"label_color"`
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	LoadingDuration time.Duration `mapstructure:"loading_duration" yaml:"loading_duration"`
	StartDelay      time.Duration `mapstructure:"start_delay" yaml:"start_delay"`
	TypeDelay       time.Duration `mapstructure:"type_delay" yaml:"type_delay"`
	DeleteDelay     time.Duration `mapstructure:"delete_delay" yaml:"delete_delay"`
	HoldDelay       time.Duration `mapstructure:"hold_delay" yaml:"hold_delay"`
	NextDelay       time.Duration `mapstructure:"next_delay" yaml:"next_delay"`
	RevealFPS       int           `mapstructure:"reveal_fps" yaml:"reveal_fps"`
}

// ContactConfig tunes the simulated contact submission.
type ContactConfig struct {
	SubmitDelay time.Duration `mapstructure:"submit_delay" yaml:"submit_delay"`
	RateLimit   float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst   int           `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// ServerConfig controls headless mode.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	Mode            string        `mapstructure:"mode" yaml:"mode"`
	Width           float64       `mapstructure:"width" yaml:"width"`
	Height          float64       `mapstructure:"height" yaml:"height"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ContentConfig points at an optional profile document.
type ContentConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "folio")
	v.SetDefault("logger.log_file", "folio.log")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", false)

	// -- Particles --
	v.SetDefault("particles.area_per_particle", 15000.0)
	v.SetDefault("particles.max_speed", 0.25)
	v.SetDefault("particles.radius_min", 1.0)
	v.SetDefault("particles.radius_max", 3.0)
	v.SetDefault("particles.opacity_min", 0.2)
	v.SetDefault("particles.opacity_max", 0.7)
	v.SetDefault("particles.link_distance", 100.0)
	v.SetDefault("particles.link_alpha", 0.1)
	v.SetDefault("particles.repel_radius", 100.0)
	v.SetDefault("particles.repel_strength", 0.01)
	v.SetDefault("particles.color", "#4F46E5")
	v.SetDefault("particles.fps", 60)
	v.SetDefault("particles.seed", 0)

	// -- Canvas --
	v.SetDefault("canvas.gamma", 0.5)
	v.SetDefault("canvas.threshold", 0.005)
	v.SetDefault("canvas.background", "#0B0B14")
	v.SetDefault("canvas.label_color", "#E6E6F0")

	// -- UI --
	v.SetDefault("ui.loading_duration", "1200ms")
	v.SetDefault("ui.start_delay", "1s")
	v.SetDefault("ui.type_delay", "150ms")
	v.SetDefault("ui.delete_delay", "75ms")
	v.SetDefault("ui.hold_delay", "2s")
	v.SetDefault("ui.next_delay", "500ms")
	v.SetDefault("ui.reveal_fps", 30)

	// -- Contact --
	v.SetDefault("contact.submit_delay", "1500ms")
	v.SetDefault("contact.rate_limit", 0.2)
	v.SetDefault("contact.rate_burst", 3)

	// -- Server --
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.width", 1280.0)
	v.SetDefault("server.height", 720.0)
	v.SetDefault("server.shutdown_timeout", "5s")

	// -- Content --
	v.SetDefault("content.path", "")
}

// NewDefaultConfig returns the configuration with nothing overridden.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return &cfg
}

// Load reads defaults, then the config file, then FOLIO_* environment
// variables. An empty path looks for ./folio.yaml and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the program cannot run with.
func (c *Config) Validate() error {
	var errs []error
	p := c.Particles
	if p.AreaPerParticle <= 0 {
		errs = append(errs, errors.New("particles.area_per_particle must be positive"))
	}
	if p.MaxSpeed < 0 {
		errs = append(errs, errors.New("particles.max_speed must not be negative"))
	}
	if p.RadiusMin < 0 || p.RadiusMax < p.RadiusMin {
		errs = append(errs, errors.New("particles.radius_min must be in [0, radius_max]"))
	}
	if p.OpacityMin < 0 || p.OpacityMax > 1 || p.OpacityMax < p.OpacityMin {
		errs = append(errs, errors.New("particles.opacity range must lie in [0, 1]"))
	}
	if p.FPS <= 0 {
		errs = append(errs, errors.New("particles.fps must be a positive integer"))
	}
	for key, val := range map[string]string{
		"particles.color":    p.Color,
		"canvas.background":  c.Canvas.Background,
		"canvas.label_color": c.Canvas.LabelColor,
	} {
		if !isHexColor(val) {
			errs = append(errs, fmt.Errorf("%s must be a #RRGGBB colour, got %q", key, val))
		}
	}
	if c.Canvas.Gamma <= 0 {
		errs = append(errs, errors.New("canvas.gamma must be positive"))
	}
	if c.UI.RevealFPS <= 0 {
		errs = append(errs, errors.New("ui.reveal_fps must be a positive integer"))
	}
	if c.Contact.SubmitDelay < 0 {
		errs = append(errs, errors.New("contact.submit_delay must not be negative"))
	}
	if c.Contact.RateLimit <= 0 || c.Contact.RateBurst <= 0 {
		errs = append(errs, errors.New("contact.rate_limit and contact.rate_burst must be positive"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.Width < 0 || c.Server.Height < 0 {
		errs = append(errs, errors.New("server.width and server.height must not be negative"))
	}
	return errors.Join(errs...)
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}
