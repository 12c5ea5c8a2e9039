package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var allKeys = []string{
	KeyOnlyJSONSupported, KeyLoadingFile, KeyErrorParsingFile, KeyInvalidHAR,
	KeyFileOpened, KeyNoHiddenTags, KeyHiddenTags, KeyDrop, KeyNoItems,
	KeySearch, KeyFilter, KeyParams, KeyContent, KeyMeta, KeyDuration, KeyItemsShown,
}

func TestSupported(t *testing.T) {
	tags, err := Supported()
	require.NoError(t, err)
	assert.Equal(t, []language.Tag{language.English, language.Russian}, tags)
}

func TestCatalogsAreComplete(t *testing.T) {
	c, err := load()
	require.NoError(t, err)

	for tag, messages := range c.messages {
		for _, key := range allKeys {
			assert.NotEmpty(t, messages[key], "%s is missing %s", tag, key)
		}
	}
}

func TestNew_Matching(t *testing.T) {
	cases := map[string]language.Tag{
		"":      language.English,
		"en":    language.English,
		"en-GB": language.English,
		"ru":    language.Russian,
		"ru-RU": language.Russian,
		"fr":    language.English,
	}
	for lang, want := range cases {
		tr, err := New(lang)
		require.NoError(t, err)
		assert.Equal(t, want, tr.Language(), lang)
	}

	tr, err := New("fr-CH, ru;q=0.9, en;q=0.8")
	require.NoError(t, err)
	assert.Equal(t, language.Russian, tr.Language())
}

func TestTranslate(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "File opened: capture.har", tr.Translate(KeyFileOpened, map[string]string{"name": "capture.har"}))
	assert.Equal(t, "The file is not a valid HAR capture", tr.Translate(KeyInvalidHAR, nil))
	assert.Equal(t, "3 of 10 items", tr.Translate(KeyItemsShown, map[string]string{"shown": "3", "total": "10"}))
	assert.Equal(t, "unknownKey", tr.Translate("unknownKey", nil))
	assert.Equal(t, "File opened: {{name}}", tr.Translate(KeyFileOpened, nil))
}

func TestTranslate_Russian(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)

	assert.Equal(t, "Открыт файл: a.har", tr.Translate(KeyFileOpened, map[string]string{"name": "a.har"}))
}

func TestTranslate_FallsBackPerKey(t *testing.T) {
	tr := &Translator{
		lang:     language.Russian,
		messages: map[string]string{},
		fallback: map[string]string{KeyDrop: "Drop a HAR file here"},
	}
	assert.Equal(t, "Drop a HAR file here", tr.Translate(KeyDrop, nil))
}
