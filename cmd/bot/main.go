package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"schedbot/internal/adapters/discord"
	"schedbot/internal/config"
	"schedbot/internal/domain"
	"schedbot/internal/infrastructure/database"
	"schedbot/internal/infrastructure/i18n"
	"schedbot/internal/infrastructure/logging"
	"schedbot/internal/infrastructure/metrics"
	"schedbot/internal/ports/output"
)

func main() {
	// Loaded once here so that both subcommands and their flag defaults see it.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:   "schedbot",
		Usage:  "Discord bot that posts one-time reminders scheduled with !schedule.",
		Action: runBot,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Connect to Discord and deliver reminders until interrupted (default).",
				Action: runBot,
			},
			{
				Name:  "migrate",
				Usage: "Apply database migrations and exit.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "postgres://... or sqlite://path",
						EnvVars: []string{"DATABASE_URL"},
						Value:   "sqlite://events.db",
					},
				},
				Action: runMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stderr)
		log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("schedbot failed")
		os.Exit(1)
	}
}

func runMigrate(c *cli.Context) error {
	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
	return database.RunMigrations(c.String("database-url"), log)
}

func runBot(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	store, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer store.Close()

	sink := setupMetrics(ctx, cfg.MetricsAddr, log)
	translator := i18n.NewTranslator(cfg.Locale, log)

	bot, err := discord.NewBot(cfg, store.Events, translator, sink, log)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}

// setupMetrics returns a Prometheus sink served on addr, or a no-op sink when
// addr is empty.
func setupMetrics(ctx context.Context, addr string, log zerolog.Logger) output.Metrics {
	if addr == "" {
		return metrics.NewNoopSink()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	sink := metrics.NewPrometheusSink(reg, log)
	go func() {
		if err := metrics.Serve(ctx, addr, reg, log); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("metrics endpoint stopped")
		}
	}()
	return sink
}
