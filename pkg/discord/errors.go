package discord

import "schedbot/internal/domain"

const failedMessageKey = "schedule.failed"

// MessageKey maps an error returned by the schedule use case to the i18n key of
// the reply shown to the user. Non-validation errors all map to a generic failure.
func MessageKey(err error) string {
	if err == nil || !domain.IsKind(err, domain.KindValidation) {
		return failedMessageKey
	}
	switch code := domain.Code(err); code {
	case "invalid_datetime", "missing_description", "description_too_long", "not_in_guild":
		return "schedule." + code
	default:
		return failedMessageKey
	}
}
