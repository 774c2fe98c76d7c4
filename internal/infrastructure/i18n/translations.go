package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"schedbot/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

const cataloguePattern = "active.*.toml"

var _ output.Translator = (*Translator)(nil)

// Translator renders user-facing messages from the go-i18n catalogues.
// Lookups go requested locale, default locale, English, then the key itself.
type Translator struct {
	bundle   *i18n.Bundle
	fallback []string
	log      zerolog.Logger

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// NewTranslator loads every embedded catalogue. An unparseable defaultLocale
// falls back to English.
func NewTranslator(defaultLocale string, log zerolog.Logger) *Translator {
	log = log.With().Str("component", "i18n").Logger()
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		log.Warn().Str("locale", defaultLocale).Msg("unknown locale, using en")
		tag = language.English
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if err := loadCatalogues(bundle, localeFS); err != nil {
		log.Error().Err(err).Msg("failed to load message catalogues")
	}

	t := &Translator{
		bundle:     bundle,
		fallback:   []string{tag.String(), language.English.String()},
		log:        log,
		localizers: make(map[string]*i18n.Localizer),
	}
	if !t.Supports(tag.String()) {
		log.Warn().Str("locale", tag.String()).Msg("no catalogue for locale, messages will be in English")
	}
	return t
}

// loadCatalogues registers every file in fsys matching active.*.toml. One bad
// file does not stop the others from loading.
func loadCatalogues(bundle *i18n.Bundle, fsys fs.FS) error {
	files, err := fs.Glob(fsys, cataloguePattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s file found", cataloguePattern)
	}
	var firstErr error
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("load %s: %w", file, err)
		}
	}
	return firstErr
}

// Supports reports whether a catalogue matches locale.
func (t *Translator) Supports(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, have := range t.bundle.LanguageTags() {
		if haveBase, _ := have.Base(); haveBase == base {
			return true
		}
	}
	return false
}

func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.log.Warn().Err(err).Str("key", key).Str("locale", locale).Msg("localize failed")
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[locale]; ok {
		return l
	}
	langs := t.fallback
	if locale != "" {
		langs = append([]string{locale}, t.fallback...)
	}
	l := i18n.NewLocalizer(t.bundle, langs...)
	t.localizers[locale] = l
	return l
}
