package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	appName = "sea-battle"
	cfgFile = appName + "/config.yml"
)

type ShipConfig struct {
	Length      int    `yaml:"length"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Orientation string `yaml:"orientation"`
}

type LayoutConfig struct {
	Width  int          `yaml:"width"`
	Height int          `yaml:"height"`
	Ships  []ShipConfig `yaml:"ships"`
}

type LayoutsConfig struct {
	Player   *LayoutConfig `yaml:"player"`
	Bot      *LayoutConfig `yaml:"bot"`
	BotReset *LayoutConfig `yaml:"bot_reset"`
}

type Config struct {
	Seed       int64         `yaml:"seed"`
	SaveDir    string        `yaml:"save_dir"`
	SaveFormat string        `yaml:"save_format"`
	LogLevel   string        `yaml:"log_level"`
	Layouts    LayoutsConfig `yaml:"layouts"`
}

func Default() Config {
	return Config{
		SaveDir:    filepath.Join(xdg.DataHome, appName, "saves"),
		SaveFormat: "json",
		LogLevel:   "info",
	}
}

// New reads the config at cfgPath. An empty path means the user config
// directory is searched, and a missing file there yields the defaults.
func New(cfgPath string) (Config, error) {
	if cfgPath == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			return Default(), nil
		}
		cfgPath = found
	}
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	return decode(file)
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.WithMessage(err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.SaveFormat) {
	case "json", "msgpack":
	default:
		return errors.WithMessagef(ErrInvalidConfig, "save format '%s'", c.SaveFormat)
	}
	if c.SaveDir == "" {
		return errors.WithMessage(ErrInvalidConfig, "empty save dir")
	}
	if _, err := c.GameLayouts(); err != nil {
		return err
	}
	return nil
}

// GameLayouts merges the configured layouts over the default ones.
func (c Config) GameLayouts() (game.Layouts, error) {
	layouts := game.DefaultLayouts()
	for _, v := range []struct {
		name   string
		cfg    *LayoutConfig
		target *game.Layout
	}{
		{"player", c.Layouts.Player, &layouts.Player},
		{"bot", c.Layouts.Bot, &layouts.Bot},
		{"bot_reset", c.Layouts.BotReset, &layouts.BotReset},
	} {
		if v.cfg == nil {
			continue
		}
		layout, err := v.cfg.toLayout()
		if err != nil {
			return game.Layouts{}, errors.WithMessagef(err, "layout '%s'", v.name)
		}
		*v.target = layout
	}
	return layouts, nil
}

func (l LayoutConfig) toLayout() (game.Layout, error) {
	layout := game.Layout{
		Width:  l.Width,
		Height: l.Height,
		Ships:  make([]game.Placement, 0, len(l.Ships)),
	}
	for i, s := range l.Ships {
		orientation, err := parseOrientation(s.Orientation)
		if err != nil {
			return game.Layout{}, errors.WithMessagef(err, "ship %d", i)
		}
		layout.Ships = append(layout.Ships, game.Placement{
			Length:      s.Length,
			Origin:      domain.Coords{X: s.X, Y: s.Y},
			Orientation: orientation,
		})
	}
	if _, _, err := layout.Build(); err != nil {
		return game.Layout{}, errors.WithMessagef(ErrInvalidConfig, "%v", err)
	}
	return layout, nil
}

func parseOrientation(s string) (domain.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h", "horizontal":
		return domain.Horizontal, nil
	case "v", "vertical":
		return domain.Vertical, nil
	default:
		return domain.UnknownOrientation, errors.WithMessagef(ErrInvalidConfig, "orientation '%s'", s)
	}
}
