package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	cfg, err := decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	layouts, err := cfg.GameLayouts()
	require.NoError(t, err)
	require.Equal(t, game.DefaultLayouts(), layouts)
}

func TestDecode_Full(t *testing.T) {
	cfg, err := decode(strings.NewReader(`
seed: 17
save_dir: /tmp/battles
save_format: msgpack
log_level: debug
layouts:
  bot_reset:
    width: 6
    height: 5
    ships:
      - length: 3
        x: 0
        y: 0
        orientation: vertical
      - length: 1
        x: 4
        y: 4
`))
	require.NoError(t, err)
	require.Equal(t, int64(17), cfg.Seed)
	require.Equal(t, "/tmp/battles", cfg.SaveDir)
	require.Equal(t, "msgpack", cfg.SaveFormat)
	require.Equal(t, "debug", cfg.LogLevel)

	layouts, err := cfg.GameLayouts()
	require.NoError(t, err)
	require.Equal(t, game.DefaultLayouts().Player, layouts.Player)
	require.Equal(t, game.DefaultLayouts().Bot, layouts.Bot)
	require.Equal(t, game.Layout{
		Width:  6,
		Height: 5,
		Ships: []game.Placement{
			{Length: 3, Origin: domain.Coords{X: 0, Y: 0}, Orientation: domain.Vertical},
			{Length: 1, Origin: domain.Coords{X: 4, Y: 4}, Orientation: domain.Horizontal},
		},
	}, layouts.BotReset)
}

func TestDecode_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"save format": "save_format: xml\n",
		"save dir":    "save_dir: \"\"\n",
		"orientation": `
layouts:
  player:
    width: 5
    height: 5
    ships:
      - {length: 1, x: 0, y: 0, orientation: diagonal}
`,
		"overlap": `
layouts:
  bot:
    width: 5
    height: 5
    ships:
      - {length: 2, x: 0, y: 0}
      - {length: 2, x: 1, y: 1}
`,
		"field size": `
layouts:
  player:
    width: 30
    height: 5
`,
	} {
		_, err := decode(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	_, err := decode(strings.NewReader("seed: [1, 2"))
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 5\nsave_format: json\n"), 0o644))

	cfg, err := New(path)
	require.NoError(t, err)
	require.Equal(t, int64(5), cfg.Seed)
	require.Equal(t, Default().SaveDir, cfg.SaveDir)

	_, err = New(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]domain.Orientation{
		"":           domain.Horizontal,
		"h":          domain.Horizontal,
		"Horizontal": domain.Horizontal,
		"v":          domain.Vertical,
		" VERTICAL ": domain.Vertical,
	} {
		got, err := parseOrientation(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := parseOrientation("up")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
