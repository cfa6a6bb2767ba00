package thesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestService_BuiltInDefaults(t *testing.T) {
	svc, err := NewService("", arbor.NewLogger())
	require.NoError(t, err)

	smh := svc.Membership("SMH")
	require.NotNil(t, smh)
	assert.Equal(t, 1, smh.Tier)
	assert.Equal(t, "Core", smh.Priority)
	assert.False(t, smh.Avoid)

	soxl := svc.Membership("soxl")
	require.NotNil(t, soxl)
	assert.True(t, soxl.Avoid)
	assert.Equal(t, 0, soxl.Tier)

	assert.Nil(t, svc.Membership("AAPL"), "stocks are outside the thesis universe")
	assert.NotEmpty(t, svc.Summary())
	assert.Len(t, svc.Tiers(), 6)
}

func TestService_MissingFileFallsBack(t *testing.T) {
	svc, err := NewService(filepath.Join(t.TempDir(), "nope.yaml"), arbor.NewLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc.Membership("QQQ"))
}

func TestService_LoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis.yaml")
	content := `summary: Custom thesis.
tiers:
  - tier: 1
    name: Compute
    priority: Core
    rationale: Silicon first.
    tickers: [SMH, SOXX]
  - tier: 0
    name: Avoid
    priority: Avoid
    rationale: Leveraged decay.
    tickers: [SOXL]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc, err := NewService(path, arbor.NewLogger())
	require.NoError(t, err)

	assert.Equal(t, "Custom thesis.", svc.Summary())
	assert.Len(t, svc.Tiers(), 2)

	smh := svc.Membership("SMH")
	require.NotNil(t, smh)
	assert.Equal(t, "Compute", smh.TierName)

	assert.Nil(t, svc.Membership("QQQ"), "file replaces the built-in universe")
	assert.True(t, svc.Membership("SOXL").Avoid)
}

func TestService_InvalidYAMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary: x\ntiers: []\n"), 0o644))

	_, err := NewService(path, arbor.NewLogger())
	assert.Error(t, err, "a tier list with no entries should fail validation")
}

func TestService_TickersCoversAllTiers(t *testing.T) {
	svc, err := NewService("", arbor.NewLogger())
	require.NoError(t, err)

	tickers := svc.Tickers()
	assert.Contains(t, tickers, "SMH")
	assert.Contains(t, tickers, "ARKG")
	assert.Contains(t, tickers, "SOXL")
	assert.Len(t, tickers, 27)
}
