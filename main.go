package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/observability"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/server"
	"github.com/olivier-w/folio/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries state shared by the commands.
type cli struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "folio",
		Short:         "A terminal portfolio with an interactive particle field.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.InitializeQuiet(c.cfg.Logger)
			defer observability.Sync()
			return runTUI(c.cfg, observability.GetLogger())
		},
	}
	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./folio.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(c.newServeCommand(), newVersionCommand())
	return root
}

func (c *cli) newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the particle field headless and serve it over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			observability.InitializeLogger(c.cfg.Logger)
			defer observability.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, c.cfg, observability.GetLogger())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func runTUI(cfg *config.Config, logger *zap.Logger) error {
	opts, err := modelOptions(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting folio", zap.String("version", version))

	startup := newStartupModel(ui.New(opts), opts.Profile.Name, cfg.UI.LoadingDuration)
	program := tea.NewProgram(startup, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	params, err := particleParams(cfg.Particles)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg.Content)
	if err != nil {
		return err
	}

	runner := particles.NewRunner(cfg.Server.Width, cfg.Server.Height, cfg.Particles.FPS, params,
		newRand(cfg.Particles.Seed), particles.WithLogger(logger.Named("particles")))
	srv := server.New(runner, server.Options{
		Addr:            cfg.Server.Addr,
		Mode:            cfg.Server.Mode,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Profile:         profile,
		Submitter:       newSubmitter(cfg.Contact, logger),
		ContactRate:     rate.Limit(cfg.Contact.RateLimit),
		ContactBurst:    cfg.Contact.RateBurst,
		Logger:          logger.Named("http"),
	})
	logger.Info("Starting folio server", zap.String("version", version), zap.String("addr", cfg.Server.Addr))
	return srv.Run(ctx)
}
