package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/storage"
	"github.com/iiroan/blue/internal/theme"
)

type cli struct {
	t     *testing.T
	dir   string
	store string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	c := &cli{t: t, dir: dir, store: filepath.Join(dir, "store.yaml")}
	t.Setenv("BLUE_STORAGE_DRIVER", storage.DriverFile)
	t.Setenv("BLUE_STORAGE_PATH", c.store)
	t.Setenv("BLUE_COLOR_SCHEME", "")
	t.Setenv("NO_COLOR", "1")
	return c
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--quiet", "--config", filepath.Join(c.dir, "config.yaml")}, args...))
	err := execute(context.Background(), root)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) stored() settings.Settings {
	c.t.Helper()
	file, err := storage.NewFile(c.store)
	require.NoError(c.t, err)
	defer file.Close()

	blob, err := file.Get(context.Background(), settings.DefaultKey)
	require.NoError(c.t, err)
	s, _, err := settings.Decode(blob)
	require.NoError(c.t, err)
	return s
}

func TestSettingsSetThenGet(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("settings", "set", "currency=EUR", "showCandlestickBackground=false")
	assert.Contains(t, out, "currency: USD → EUR")

	assert.Equal(t, "EUR\n", c.mustRun("settings", "get", "currency"))
	assert.Equal(t, "false\n", c.mustRun("settings", "get", "showCandlestickBackground"))

	s := c.stored()
	assert.Equal(t, settings.CurrencyEUR, s.Currency)
	assert.False(t, s.ShowCandlestickBackground)
	assert.Equal(t, settings.ThemeLight, s.Theme)
}

func TestSettingsSet_RejectsWholeCommand(t *testing.T) {
	c := newCLI(t)
	c.mustRun("settings", "set", "theme=dark")

	_, err := c.run("settings", "set", "currency=GBP", "fontSize=huge")
	require.ErrorIs(t, err, settings.ErrInvalidValue)

	_, err = c.run("settings", "set", "leverage=100")
	require.ErrorIs(t, err, settings.ErrUnknownKey)

	s := c.stored()
	assert.Equal(t, settings.CurrencyUSD, s.Currency)
	assert.Equal(t, settings.ThemeDark, s.Theme)
}

func TestSettingsShowJSON(t *testing.T) {
	c := newCLI(t)
	c.mustRun("settings", "set", "dataUsage=wifi-only")

	var got settings.Settings
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("settings", "show", "--json")), &got))
	want := settings.Defaults()
	want.DataUsage = settings.DataWifiOnly
	assert.Equal(t, want, got)
}

func TestSettingsShow_Grouped(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("settings")
	for _, group := range settings.Groups() {
		assert.Contains(t, out, group)
	}
	assert.Contains(t, out, "screenReaderOptimized")
}

func TestSettingsReset(t *testing.T) {
	c := newCLI(t)
	c.mustRun("settings", "set", "theme=system", "confirmTrades=false")

	_, err := c.run("settings", "reset")
	require.Error(t, err)
	assert.Equal(t, settings.ThemeSystem, c.stored().Theme)

	c.mustRun("settings", "reset", "--yes")
	assert.Equal(t, settings.Defaults(), c.stored())
}

func TestSettingsKeys_NoStorage(t *testing.T) {
	c := newCLI(t)
	t.Setenv("BLUE_STORAGE_DRIVER", "etcd")

	out := c.mustRun("settings", "keys")
	assert.Contains(t, out, "light|dark|system")
	assert.Contains(t, out, "wifi-only|always")
}

func TestInvalidStorageConfig(t *testing.T) {
	c := newCLI(t)
	t.Setenv("BLUE_STORAGE_DRIVER", "etcd")

	_, err := c.run("settings", "show")
	require.ErrorContains(t, err, "unknown storage driver")
}

func TestThemeShow(t *testing.T) {
	c := newCLI(t)
	c.mustRun("settings", "set", "theme=system")

	var got theme.Theme
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("theme", "show", "--scheme", "dark", "--json")), &got))
	assert.True(t, got.IsDark)
	assert.Equal(t, theme.StatusBarLight, got.StatusBarStyle)
	assert.Equal(t, theme.DarkPalette().Background, got.Colors.Background)

	out := c.mustRun("theme", "show", "--scheme", "light")
	assert.Contains(t, out, "dark-content")
	assert.Contains(t, out, "#1E3A8A")

	_, err := c.run("theme", "show", "--scheme", "sepia")
	require.ErrorContains(t, err, "invalid --scheme")
}

func TestToken(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("token", "show"), "No token stored")
	c.mustRun("token", "set", "secret-abcd")
	assert.Equal(t, "•••••••abcd\n", c.mustRun("token", "show"))
	assert.Equal(t, "secret-abcd\n", c.mustRun("token", "show", "--reveal"))
	c.mustRun("token", "clear")
	assert.Contains(t, c.mustRun("token", "show"), "No token stored")

	_, err := c.run("token", "set")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("version")
	assert.Contains(t, out, "Schema:         v1")
	_, err := os.Stat(c.store)
	assert.True(t, os.IsNotExist(err))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "•••", maskToken("abc"))
	assert.Equal(t, "••cdef", maskToken("abcdef"))
}
