package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadRepoBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load("../../locales", "en", []string{"en", "sv"})
	require.NoError(t, err)
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := loadRepoBundle(t)
	require.Equal(t, "sv", b.Resolve("en;q=0.8, sv;q=0.9"))
	require.Equal(t, "sv", b.Resolve("sv-SE,sv;q=0.9,en;q=0.5"))
	require.Equal(t, "en", b.Resolve("en-GB"))
}

func TestResolveFallsBack(t *testing.T) {
	b := loadRepoBundle(t)
	require.Equal(t, "en", b.Resolve(""))
	require.Equal(t, "en", b.Resolve("ja"))
	require.Equal(t, "en", b.Resolve(";;;garbage"))
}

func TestLocaleFilesShareKeys(t *testing.T) {
	b := loadRepoBundle(t)
	for key := range b.dict["en"] {
		_, ok := b.dict["sv"][key]
		require.True(t, ok, "sv missing %s", key)
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a":"A","b":"B %d"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sv.json"), []byte(`{"a":"Å"}`), 0o600))

	b, err := Load(dir, "en", []string{"sv", "en"})
	require.NoError(t, err)
	require.Equal(t, "Å", b.T("sv", "a"))
	require.Equal(t, "B 3", b.Tf("sv", "b", 3))
	require.Equal(t, "missing.key", b.T("sv", "missing.key"))
	require.Equal(t, []string{"en", "sv"}, b.Supported())
	require.True(t, b.IsSupported("SV"))
}

func TestLoadRequiresFallbackFile(t *testing.T) {
	_, err := Load(t.TempDir(), "en", []string{"en"})
	require.Error(t, err)
}
