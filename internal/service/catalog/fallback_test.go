package catalog

import (
	"testing"

	"modelhub/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFallback_EmbeddedDefaults(t *testing.T) {
	f, err := NewStaticFallback()
	require.NoError(t, err)

	openai := f.Get(core.ProviderOpenAI)
	require.NotEmpty(t, openai)
	assert.Equal(t, "gpt-4o", openai[0].ID)
	assert.Equal(t, "gpt-4o", openai[0].ProviderModelID)
	require.NotNil(t, openai[0].Pricing)
	assert.InDelta(t, 2.5, *openai[0].Pricing.InputPerMTok, 1e-9)

	// 沒有 list endpoint 的供應商一定要有預設值
	for _, spec := range core.Providers {
		if spec.Shape == core.ShapeNone {
			assert.NotEmpty(t, f.Get(spec.Name), "provider %s", spec.Name)
		}
	}

	anthropic := f.Get(core.ProviderAnthropic)
	require.NotEmpty(t, anthropic)
	assert.Equal(t, "anthropic", anthropic[0].OwnedBy)
}

func TestStaticFallback_UnconfiguredProviderIsEmpty(t *testing.T) {
	f, err := NewStaticFallback()
	require.NoError(t, err)
	out := f.Get(core.ProviderCustom)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestStaticFallback_GetReturnsCopy(t *testing.T) {
	f, err := ParseStaticFallback([]byte("groq:\n  - id: a\n  - id: b\n"))
	require.NoError(t, err)
	first := f.Get(core.ProviderGroq)
	first[0].ID = "mutated"
	assert.Equal(t, "a", f.Get(core.ProviderGroq)[0].ID)
}

func TestParseStaticFallback_Errors(t *testing.T) {
	_, err := ParseStaticFallback([]byte("not-a-provider:\n  - id: a\n"))
	assert.Error(t, err)

	_, err = ParseStaticFallback([]byte("openai: [unterminated"))
	assert.Error(t, err)
}

func TestParseStaticFallback_SkipsEntriesWithoutID(t *testing.T) {
	f, err := ParseStaticFallback([]byte("xai:\n  - displayName: nameless\n  - id: grok\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"grok"}, modelIDs(ProviderCatalog{Models: f.Get(core.ProviderXAI)}))
}

func TestStaticFallback_GetReturnsDeepCopy(t *testing.T) {
	f, err := NewStaticFallback()
	require.NoError(t, err)

	first := f.Get(core.ProviderOpenAI)
	require.NotEmpty(t, first)
	require.NotNil(t, first[0].Pricing)
	want := *first[0].Pricing.InputPerMTok
	*first[0].Pricing.InputPerMTok = -1
	first[0].ID = "mutated"

	second := f.Get(core.ProviderOpenAI)
	assert.Equal(t, "gpt-4o", second[0].ID)
	assert.InDelta(t, want, *second[0].Pricing.InputPerMTok, 1e-9)
}
