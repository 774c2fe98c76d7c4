package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/input"
	pkgdiscord "schedbot/pkg/discord"
)

const (
	commandName       = "schedule"
	confirmationEmoji = "📅"
	commandTimeout    = 15 * time.Second
)

// HandleMessageCreate is registered on the session for MessageCreate events.
func (h *Handler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	h.handleMessage(ctx, s, m.Message)
}

func (h *Handler) handleMessage(ctx context.Context, s messenger, m *discordgo.Message) {
	args, ok := pkgdiscord.ParseCommand(m.Content, h.prefix, commandName)
	if !ok {
		return
	}
	if args.Empty() {
		h.reply(ctx, s, m.ChannelID, h.t("schedule.usage", map[string]any{"Prefix": h.prefix}))
		return
	}

	guildID, err := pkgdiscord.ParseSnowflake(m.GuildID)
	if err != nil {
		h.log.Warn().Err(err).Msg("unexpected guild id")
		return
	}
	channelID, err := pkgdiscord.ParseSnowflake(m.ChannelID)
	if err != nil {
		h.log.Warn().Err(err).Msg("unexpected channel id")
		return
	}

	event, err := h.scheduleUseCase.ScheduleEvent(ctx, input.ScheduleRequest{
		GuildID:     guildID,
		ChannelID:   channelID,
		Date:        args.Date,
		Time:        args.Time,
		Description: args.Description,
	})
	if err != nil {
		if !domain.IsKind(err, domain.KindValidation) {
			h.log.Error().Err(err).Str("channel_id", m.ChannelID).Msg("schedule command failed")
		}
		h.reply(ctx, s, m.ChannelID, h.t(pkgdiscord.MessageKey(err), map[string]any{
			"Prefix": h.prefix,
			"Max":    entities.MaxDescriptionLength,
		}))
		return
	}

	// The event is stored; nothing below may undo that.
	confirmation := h.reply(ctx, s, m.ChannelID, h.t("schedule.confirmed", map[string]any{
		"Description": event.Description,
		"When":        pkgdiscord.FormatEventDateTime(event.EventTime),
	}))
	if confirmation == nil {
		return
	}
	if err := s.MessageReactionAdd(m.ChannelID, confirmation.ID, confirmationEmoji, discordgo.WithContext(ctx)); err != nil {
		h.log.Debug().Err(err).Str("message_id", confirmation.ID).Msg("confirmation reaction failed")
	}
}
