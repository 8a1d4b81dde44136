package gemini_test

import (
	"testing"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "newline-delimited JSON")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}

func TestBuildConfig_EnablesSearchGrounding(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.Len(t, config.Tools, 1)
	assert.NotNil(t, config.Tools[0].GoogleSearch)
}

func TestBuildUserPrompt_ContainsQuery(t *testing.T) {
	t.Parallel()

	query := leadscout.Query{Keyword: "coffee shops", Location: "Oakland, CA", Limit: 10}

	prompt := gemini.BuildUserPrompt(query)

	assert.Contains(t, prompt, "up to 10")
	assert.Contains(t, prompt, `"coffee shops"`)
	assert.Contains(t, prompt, `"Oakland, CA"`)
}

func TestBuildUserPrompt_DefaultsTheLimit(t *testing.T) {
	t.Parallel()

	query := leadscout.Query{Keyword: "coffee shops", Location: "Oakland, CA"}

	prompt := gemini.BuildUserPrompt(query)

	assert.Contains(t, prompt, "up to 30")
}

func TestBuildUserPrompt_ListsWireKeys(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(leadscout.Query{Keyword: "k", Location: "l"})

	for _, key := range []string{"name", "address", "phone", "website", "email", "category", "rating", "reviewCount", "hours"} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(leadscout.Query{Keyword: "k", Location: "l"})

	assert.NotContains(t, prompt, "You are a local business researcher")
}
