package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mdc/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in
// config.go exists in every embedded locale file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyTodayIs,
		config.TKeyConverted,
		config.TKeyConvertedToISO,
		config.TKeyDiffResult,
		config.TKeyShiftResult,
		config.TKeySyncDone,
		config.TKeyServing,
		config.TKeyEvtSummary,
		config.TKeyEvtSummaryAge,
		config.TKeyEvtSummaryBirth,
	}

	entries, err := localeFS.ReadDir("locales")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "locales must be embedded")

	for _, entry := range entries {
		content, err := localeFS.ReadFile("locales/" + entry.Name())
		require.NoError(t, err)

		var jsonMap map[string]interface{}
		require.NoError(t, json.Unmarshal(content, &jsonMap), "%s must be valid JSON", entry.Name())

		for _, key := range keysToCheck {
			_, exists := jsonMap[key]
			assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, entry.Name())
		}

		for jsonKey := range jsonMap {
			found := false
			for _, key := range keysToCheck {
				if key == jsonKey {
					found = true
					break
				}
			}
			if !found {
				t.Logf("Warning: Key '%s' exists in %s but is not referenced in config.go", jsonKey, entry.Name())
			}
		}
	}
}

// TestTranslator verifies locale loading, interpolation, and the
// missing-key fallback.
func TestTranslator(t *testing.T) {
	tr := NewTranslator("en")
	assert.ElementsMatch(t, []string{"en", "fr"}, tr.Supported)

	msg := tr.MsgData(config.TKeyEvtSummaryAge, map[string]any{"Name": "Ada", "Age": 42})
	assert.Equal(t, "Birthday: Ada (42)", msg)

	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"), "missing keys translate to themselves")

	fr := NewTranslator("fr")
	assert.Equal(t, "Anniversaire : Ada (naissance)",
		fr.MsgData(config.TKeyEvtSummaryBirth, map[string]any{"Name": "Ada"}))

	// Unknown language falls back to the default bundle language.
	de := NewTranslator("de")
	assert.Equal(t, "Birthday: Ada",
		de.MsgData(config.TKeyEvtSummary, map[string]any{"Name": "Ada"}))
}
