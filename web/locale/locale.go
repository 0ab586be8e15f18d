package locale

import (
	"io/fs"
	"sync"

	"github.com/careerconnect/careerconnect/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

var (
	bundleMu   sync.RWMutex
	i18nBundle *i18n.Bundle
)

func newBundle() *i18n.Bundle {
	// set default bundle to english
	b := i18n.NewBundle(language.MustParse("en-US"))
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return b
}

// InitLocalizer parses every file under translation/ in i18nFS.
func InitLocalizer(i18nFS fs.FS) error {
	b := newBundle()
	if err := parseTranslationFiles(i18nFS, b); err != nil {
		return err
	}
	bundleMu.Lock()
	i18nBundle = b
	bundleMu.Unlock()
	return nil
}

func bundle() *i18n.Bundle {
	bundleMu.RLock()
	b := i18nBundle
	bundleMu.RUnlock()
	if b != nil {
		return b
	}
	bundleMu.Lock()
	defer bundleMu.Unlock()
	if i18nBundle == nil {
		i18nBundle = newBundle()
	}
	return i18nBundle
}

// LocalizerMiddleware picks the language from the lang query parameter, the
// lang cookie or Accept-Language, in that order.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		langs := make([]string, 0, 2)
		if q := c.Query("lang"); q != "" {
			langs = append(langs, q)
		} else if cookie, err := c.Request.Cookie("lang"); err == nil {
			langs = append(langs, cookie.Value)
		}
		langs = append(langs, c.GetHeader("Accept-Language"))

		c.Set(localizerKey, i18n.NewLocalizer(bundle(), langs...))
		c.Next()
	}
}

func localizerFrom(c *gin.Context) *i18n.Localizer {
	if c != nil {
		if v, ok := c.Get(localizerKey); ok {
			if l, ok := v.(*i18n.Localizer); ok {
				return l
			}
		}
	}
	return i18n.NewLocalizer(bundle(), "en")
}

// Localize renders key in the request language. fallback is the English
// template used when no translation file defines key.
func Localize(c *gin.Context, key, fallback string, params map[string]any) string {
	cfg := &i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	}
	if fallback != "" {
		cfg.DefaultMessage = &i18n.Message{ID: key, Other: fallback}
	}
	msg, err := localizerFrom(c).Localize(cfg)
	if msg != "" {
		return msg
	}
	if err != nil {
		logger.Debug("Failed to localize message:", err)
	}
	if fallback != "" {
		return fallback
	}
	return key
}

func parseTranslationFiles(i18nFS fs.FS, b *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(i18nFS, path)
			if err != nil {
				return err
			}
			_, err = b.ParseMessageFileBytes(data, path)
			return err
		})
}
