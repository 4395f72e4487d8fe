package main

import (
	"fmt"
	"math/rand"

	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/portfolio"
	"github.com/olivier-w/folio/internal/typewriter"
	"github.com/olivier-w/folio/internal/ui"
	"go.uber.org/zap"
)

func particleParams(cfg config.ParticlesConfig) (particles.Params, error) {
	color, err := canvas.ParseHex(cfg.Color)
	if err != nil {
		return particles.Params{}, fmt.Errorf("particles.color: %w", err)
	}
	return particles.Params{
		AreaPerParticle: cfg.AreaPerParticle,
		MaxSpeed:        cfg.MaxSpeed,
		RadiusMin:       cfg.RadiusMin,
		RadiusMax:       cfg.RadiusMax,
		OpacityMin:      cfg.OpacityMin,
		OpacityMax:      cfg.OpacityMax,
		LinkDistance:    cfg.LinkDistance,
		LinkAlpha:       cfg.LinkAlpha,
		RepelRadius:     cfg.RepelRadius,
		RepelStrength:   cfg.RepelStrength,
		Color:           color,
	}, nil
}

func canvasOptions(cfg config.CanvasConfig) ([]canvas.Option, error) {
	background, err := canvas.ParseHex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("canvas.background: %w", err)
	}
	label, err := canvas.ParseHex(cfg.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("canvas.label_color: %w", err)
	}
	return []canvas.Option{
		canvas.WithGamma(cfg.Gamma),
		canvas.WithThreshold(cfg.Threshold),
		canvas.WithBackground(background),
		canvas.WithLabelColor(label),
	}, nil
}

func typingTiming(cfg config.UIConfig) typewriter.Timing {
	return typewriter.Timing{
		Start:  cfg.StartDelay,
		Type:   cfg.TypeDelay,
		Delete: cfg.DeleteDelay,
		Hold:   cfg.HoldDelay,
		Next:   cfg.NextDelay,
	}
}

func newSubmitter(cfg config.ContactConfig, logger *zap.Logger) contact.Simulated {
	return contact.Simulated{Delay: cfg.SubmitDelay, Logger: logger.Named("contact")}
}

// newRand returns nil for seed 0 so the simulator seeds itself.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func loadProfile(cfg config.ContentConfig) (portfolio.Profile, error) {
	if cfg.Path == "" {
		return portfolio.Default(), nil
	}
	return portfolio.Load(cfg.Path)
}

func modelOptions(cfg *config.Config, logger *zap.Logger) (ui.Options, error) {
	params, err := particleParams(cfg.Particles)
	if err != nil {
		return ui.Options{}, err
	}
	canvasOpts, err := canvasOptions(cfg.Canvas)
	if err != nil {
		return ui.Options{}, err
	}
	profile, err := loadProfile(cfg.Content)
	if err != nil {
		return ui.Options{}, err
	}
	return ui.Options{
		Profile:   profile,
		Params:    params,
		Canvas:    canvasOpts,
		FPS:       cfg.Particles.FPS,
		Rand:      newRand(cfg.Particles.Seed),
		Typing:    typingTiming(cfg.UI),
		RevealFPS: cfg.UI.RevealFPS,
		Submitter: newSubmitter(cfg.Contact, logger),
		Logger:    logger.Named("ui"),
	}, nil
}
