package discord

import (
	"github.com/rs/zerolog"

	"schedbot/internal/ports/input"
	"schedbot/internal/ports/output"
)

// Handler handles Discord messages using use cases.
type Handler struct {
	scheduleUseCase input.ScheduleUseCase
	translator      output.Translator
	prefix          string
	locale          string
	log             zerolog.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	scheduleUseCase input.ScheduleUseCase,
	translator output.Translator,
	prefix string,
	locale string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		scheduleUseCase: scheduleUseCase,
		translator:      translator,
		prefix:          prefix,
		locale:          locale,
		log:             log.With().Str("component", "commands").Logger(),
	}
}
