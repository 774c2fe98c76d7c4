package discord

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"schedbot/internal/domain"
	"schedbot/internal/ports/output"
	pkgdiscord "schedbot/pkg/discord"
)

var _ output.Notifier = (*ChannelNotifier)(nil)

// channelSender is the part of *discordgo.Session the notifier needs.
type channelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelNotifier posts reminders to Discord channels. Every send is rate limited
// and bounded by timeout, so one unreachable channel cannot stall a whole tick.
type ChannelNotifier struct {
	sender  channelSender
	limiter *rate.Limiter
	timeout time.Duration
	log     zerolog.Logger
}

func NewChannelNotifier(sender channelSender, ratePerSec int, timeout time.Duration, log zerolog.Logger) *ChannelNotifier {
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChannelNotifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		timeout: timeout,
		log:     log.With().Str("component", "notifier").Logger(),
	}
}

func (n *ChannelNotifier) Notify(ctx context.Context, channelID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.limiter.Wait(ctx); err != nil {
		return domain.Delivery("rate_limited", err)
	}

	id := pkgdiscord.FormatSnowflake(channelID)
	done := make(chan error, 1)
	go func() {
		_, err := n.sender.ChannelMessageSendComplex(id, plainMessage(text), discordgo.WithContext(ctx))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return classifySendError(err)
		}
		n.log.Debug().Str("channel_id", id).Msg("reminder sent")
		return nil
	case <-ctx.Done():
		return domain.Delivery("timeout", ctx.Err())
	}
}

// classifySendError maps a discordgo failure to a delivery error code.
func classifySendError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Delivery("timeout", err)
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
				return domain.Delivery("channel_unavailable", errors.Join(domain.ErrChannelUnavailable, err))
			}
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusNotFound, http.StatusForbidden:
				return domain.Delivery("channel_unavailable", errors.Join(domain.ErrChannelUnavailable, err))
			case http.StatusTooManyRequests:
				return domain.Delivery("rate_limited", err)
			}
		}
	}
	return domain.Delivery("send_failed", err)
}
