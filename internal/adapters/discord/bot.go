package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"schedbot/internal/application"
	"schedbot/internal/config"
	"schedbot/internal/ports/output"
)

const shutdownTimeout = 30 * time.Second

// Bot is the Discord adapter.
type Bot struct {
	session   *discordgo.Session
	config    *config.Config
	handler   *Handler
	scheduler *application.Scheduler
	log       zerolog.Logger
	readyOnce sync.Once
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
func NewBot(
	cfg *config.Config,
	eventRepo output.EventRepository,
	translator output.Translator,
	metrics output.Metrics,
	log zerolog.Logger,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	notifier := NewChannelNotifier(s, cfg.SendRate, cfg.SendTimeout, log)
	eventUC := application.NewEventService(eventRepo, metrics, cfg.Location, log)
	reminderUC := application.NewReminderService(eventRepo, notifier, translator, metrics, cfg.Locale, log)

	bot := &Bot{
		session:   s,
		config:    cfg,
		handler:   NewHandler(eventUC, translator, cfg.CommandPrefix, cfg.Locale, log),
		scheduler: application.NewScheduler(reminderUC, cfg.CheckInterval, log),
		log:       log.With().Str("component", "bot").Logger(),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.handler.HandleMessageCreate)
}

// onReady starts the reminder loop on the first Ready. Reconnects fire Ready
// again and must not start a second loop.
func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to discord")
	b.readyOnce.Do(b.scheduler.Start)
}

// Run connects to Discord and blocks until ctx is cancelled, then stops the
// reminder loop and closes the session.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.log.Info().
		Str("prefix", b.config.CommandPrefix).
		Dur("check_interval", b.config.CheckInterval).
		Msg("bot running")

	<-ctx.Done()
	b.log.Info().Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	stopErr := b.scheduler.Stop(stopCtx)
	if stopErr != nil {
		b.log.Warn().Err(stopErr).Msg("reminder pass did not finish before shutdown")
	}
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}
