// Package i18n provides the user facing messages of netlogs. Catalogs are
// embedded YAML files keyed by message key; values may reference variables as
// {{name}}.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Fallback is used for keys missing from the selected catalog.
var Fallback = language.English

// Translator looks up messages for one language.
type Translator struct {
	lang     language.Tag
	messages map[string]string
	fallback map[string]string
}

type catalogs struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
}

func load() (*catalogs, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	c := &catalogs{messages: make(map[language.Tag]map[string]string)}
	for _, entry := range entries {
		name := entry.Name()
		tag, err := language.Parse(strings.TrimSuffix(name, path.Ext(name)))
		if err != nil {
			return nil, fmt.Errorf("invalid catalog name %s: %w", name, err)
		}

		data, err := locales.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
		}

		var messages map[string]string
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
		}
		c.messages[tag] = messages
	}

	c.tags = make([]language.Tag, 0, len(c.messages))
	c.tags = append(c.tags, Fallback)
	for tag := range c.messages {
		if tag != Fallback {
			c.tags = append(c.tags, tag)
		}
	}
	sort.Slice(c.tags[1:], func(i, j int) bool {
		return c.tags[i+1].String() < c.tags[j+1].String()
	})
	return c, nil
}

// New returns a translator for the closest supported match of lang, which may
// be a BCP 47 tag or an Accept-Language style list. Unknown languages get the
// fallback catalog.
func New(lang string) (*Translator, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}

	matcher := language.NewMatcher(c.tags)
	_, index := language.MatchStrings(matcher, lang)
	tag := c.tags[index]

	return &Translator{
		lang:     tag,
		messages: c.messages[tag],
		fallback: c.messages[Fallback],
	}, nil
}

// Supported lists the languages with a catalog, fallback first.
func Supported() ([]language.Tag, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.tags, nil
}

// Language is the matched catalog language.
func (t *Translator) Language() language.Tag {
	return t.lang
}

// Translate returns the message for key with vars substituted. Unknown keys
// translate to the key itself.
func (t *Translator) Translate(key string, vars map[string]string) string {
	msg, ok := t.messages[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	if len(vars) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
