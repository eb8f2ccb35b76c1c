// Package locale localizes API response messages. Spanish is the default
// (the panel's reference front end is Spanish); English is bundled as a
// fallback for API clients.
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"finanzas-ui/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var i18nBundle *i18n.Bundle

// InitLocalizer parses the embedded translation files into the bundle.
func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(language.MustParse("es-ES"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".toml") {
			return nil
		}
		data, err := i18nFS.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = i18nBundle.ParseMessageFileBytes(data, path)
		return err
	})
}

func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// I18n resolves a message for the given language tags, falling back to
// the bundle default. Params are "name==value" pairs for templates.
func I18n(langs []string, key string, params ...string) string {
	if i18nBundle == nil {
		return key
	}

	localizer := i18n.NewLocalizer(i18nBundle, langs...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Debugf("failed to localize %q: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware stores a per-request translate function in the gin
// context, keyed "I18n". Language comes from the "lang" cookie when set,
// otherwise from Accept-Language.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var langs []string
		if lang, err := c.Cookie("lang"); err == nil && lang != "" {
			langs = append(langs, lang)
		}
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			langs = append(langs, accept)
		}

		c.Set("I18n", func(key string, params ...string) string {
			return I18n(langs, key, params...)
		})
		c.Next()
	}
}
