package output

import "context"

// Notifier sends text to a channel. Failures are domain.KindDelivery errors.
type Notifier interface {
	Notify(ctx context.Context, channelID int64, text string) error
}
