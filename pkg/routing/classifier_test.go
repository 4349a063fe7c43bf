package routing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() []Rule {
	return []Rule{
		{Prefix: "/health", Public: true},
		{Prefix: "/api/v1/auth", Public: true},
		{Prefix: "/api/v1/audits", Feature: "AUDIT"},
		{Prefix: "/api/v1/actions", Feature: "ACTIONS"},
		{Prefix: "/api/v1/actions/reports", Feature: "INDICATORS"},
	}
}

func TestClassifier_IsPublic(t *testing.T) {
	c := NewClassifier(testRules())

	assert.True(t, c.IsPublic("/health"))
	assert.True(t, c.IsPublic("/api/v1/auth/login"))
	assert.False(t, c.IsPublic("/api/v1/audits"))
	assert.False(t, c.IsPublic("/api/v1/processes"))
	// boundary: /healthz is not under /health
	assert.False(t, c.IsPublic("/healthz"))
}

func TestClassifier_RequiredFeature_LongestPrefixWins(t *testing.T) {
	c := NewClassifier(testRules())

	feature, ok := c.RequiredFeature("/api/v1/audits/42")
	require.True(t, ok)
	assert.Equal(t, "AUDIT", feature)

	feature, ok = c.RequiredFeature("/api/v1/actions/reports/monthly")
	require.True(t, ok)
	assert.Equal(t, "INDICATORS", feature)

	feature, ok = c.RequiredFeature("/api/v1/actions/7")
	require.True(t, ok)
	assert.Equal(t, "ACTIONS", feature)

	_, ok = c.RequiredFeature("/api/v1/processes")
	assert.False(t, ok)
}

func TestHasPathPrefixOnBoundary(t *testing.T) {
	assert.True(t, HasPathPrefixOnBoundary("/a/b", "/a"))
	assert.True(t, HasPathPrefixOnBoundary("/a", "/a"))
	assert.True(t, HasPathPrefixOnBoundary("/anything", "/"))
	assert.False(t, HasPathPrefixOnBoundary("/ab", "/a"))
	assert.False(t, HasPathPrefixOnBoundary("/a/b", ""))
}

func TestLoadManifest(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "routes.yaml")
	content := `version: 1
routes:
  - prefix: /health
    public: true
  - prefix: /api/v1/audits
    feature: AUDIT
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.True(t, rules[0].Public)
	assert.Equal(t, "AUDIT", rules[1].Feature)
}

func TestLoadManifest_Errors(t *testing.T) {
	tmp := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(tmp, "nope.yaml"))
		assert.ErrorIs(t, err, ErrManifestNotFound)
	})

	t.Run("bad version", func(t *testing.T) {
		path := filepath.Join(tmp, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 2\nroutes: []\n"), 0o644))
		_, err := LoadManifest(path)
		assert.Error(t, err)
	})

	t.Run("relative prefix", func(t *testing.T) {
		path := filepath.Join(tmp, "rel.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\nroutes:\n  - prefix: api\n"), 0o644))
		_, err := LoadManifest(path)
		assert.Error(t, err)
	})
}
