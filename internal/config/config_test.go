package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 15000.0, cfg.Particles.AreaPerParticle)
	assert.Equal(t, 0.25, cfg.Particles.MaxSpeed)
	assert.Equal(t, 100.0, cfg.Particles.LinkDistance)
	assert.Equal(t, 60, cfg.Particles.FPS)
	assert.Equal(t, 1200*time.Millisecond, cfg.UI.LoadingDuration)
	assert.Equal(t, time.Second, cfg.UI.StartDelay)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.TypeDelay)
	assert.Equal(t, 75*time.Millisecond, cfg.UI.DeleteDelay)
	assert.Equal(t, 2*time.Second, cfg.UI.HoldDelay)
	assert.Equal(t, "#4F46E5", cfg.Particles.Color)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	doc := `
particles:
  fps: 30
  color: "#FF8C00"
ui:
  loading_duration: 2s
server:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	t.Setenv("FOLIO_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("FOLIO_PARTICLES_SEED", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Particles.FPS)
	assert.Equal(t, "#FF8C00", cfg.Particles.Color)
	assert.Equal(t, 2*time.Second, cfg.UI.LoadingDuration)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, int64(42), cfg.Particles.Seed)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"area", func(c *Config) { c.Particles.AreaPerParticle = 0 }, "particles.area_per_particle must be positive"},
		{"radius", func(c *Config) { c.Particles.RadiusMin = 4 }, "particles.radius_min"},
		{"opacity", func(c *Config) { c.Particles.OpacityMax = 1.5 }, "particles.opacity range"},
		{"fps", func(c *Config) { c.Particles.FPS = 0 }, "particles.fps"},
		{"colour", func(c *Config) { c.Particles.Color = "indigo" }, "particles.color must be a #RRGGBB colour"},
		{"gamma", func(c *Config) { c.Canvas.Gamma = 0 }, "canvas.gamma"},
		{"rate", func(c *Config) { c.Contact.RateBurst = 0 }, "contact.rate_limit"},
		{"addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.edit(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
