package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// messenger is the part of *discordgo.Session the command handler needs.
type messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

var _ messenger = (*discordgo.Session)(nil)

// plainMessage wraps content so that nothing in it pings anyone. Descriptions
// are user text and may contain @everyone or role mentions.
func plainMessage(content string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
}

// reply sends content to channelID. Failures are logged and swallowed.
func (h *Handler) reply(ctx context.Context, s messenger, channelID, content string) *discordgo.Message {
	msg, err := s.ChannelMessageSendComplex(channelID, plainMessage(content), discordgo.WithContext(ctx))
	if err != nil {
		h.log.Warn().Err(err).Str("channel_id", channelID).Msg("reply failed")
		return nil
	}
	return msg
}

func (h *Handler) t(key string, data map[string]any) string {
	return h.translator.T(h.locale, key, data)
}
