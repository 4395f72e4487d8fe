package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/typewriter"
	"go.uber.org/zap"
)

func TestDefaultConfigMatchesDefaultParams(t *testing.T) {
	cfg := config.NewDefaultConfig()
	params, err := particleParams(cfg.Particles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params != particles.DefaultParams() {
		t.Fatalf("expected defaults to agree, got %+v", params)
	}
}

func TestParticleParamsRejectsBadColor(t *testing.T) {
	cfg := config.NewDefaultConfig().Particles
	cfg.Color = "indigo"
	if _, err := particleParams(cfg); err == nil || !strings.Contains(err.Error(), "particles.color") {
		t.Fatalf("expected particles.color error, got %v", err)
	}
}

func TestCanvasOptionsRejectsBadColor(t *testing.T) {
	cfg := config.NewDefaultConfig().Canvas
	cfg.LabelColor = "#12"
	if _, err := canvasOptions(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestModelOptionsFromDefaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	opts, err := modelOptions(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Profile.Name == "" {
		t.Fatal("expected built-in profile")
	}
	if opts.Rand != nil {
		t.Fatal("expected seed 0 to leave seeding to the simulator")
	}
	if opts.Typing != typewriter.DefaultTiming() {
		t.Fatalf("unexpected timing %+v", opts.Typing)
	}
	if len(opts.Canvas) != 4 {
		t.Fatalf("expected 4 canvas options, got %d", len(opts.Canvas))
	}
	c := canvas.NewBraille(opts.Canvas...)
	if c == nil {
		t.Fatal("expected canvas")
	}
}

func TestNewRandIsDeterministicForSeed(t *testing.T) {
	a, b := newRand(42), newRand(42)
	if a.Int63() != b.Int63() {
		t.Fatal("expected same sequence for the same seed")
	}
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Fatalf("expected %q, got %q", version, out.String())
	}
}

func TestRootCommandReportsBadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	root := newRootCommand()
	root.SetArgs([]string{"--config", "missing.yaml", "version"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
