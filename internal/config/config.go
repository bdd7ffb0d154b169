// Package config loads the window manager configuration: workspace
// names, the layouts every workspace starts with, key bindings and a
// few appearance settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/intio/tilewm/layout"
)

// Config is the top-level configuration file.
type Config struct {
	Workspaces      []string          `yaml:"workspaces"`
	Layouts         []LayoutConfig    `yaml:"layouts"`
	Bindings        map[string]string `yaml:"bindings"`
	BorderWidth     uint32            `yaml:"border_width"`
	Gap             uint32            `yaml:"gap"`
	RatioStep       float64           `yaml:"ratio_step"`
	FocusedBorder   string            `yaml:"focused_border"`
	UnfocusedBorder string            `yaml:"unfocused_border"`
	Listen          string            `yaml:"listen"`
}

// LayoutConfig describes one layout available on every workspace.
type LayoutConfig struct {
	Symbol      string   `yaml:"symbol"`
	Kind        string   `yaml:"kind"`
	MaxMain     *uint    `yaml:"max_main"`
	Ratio       *float64 `yaml:"ratio"`
	FollowFocus bool     `yaml:"follow_focus"`
	Gapless     bool     `yaml:"gapless"`
}

const (
	defaultMaxMain = 1
	defaultRatio   = 0.6
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func defaultLayouts() []LayoutConfig {
	return []LayoutConfig{
		{Symbol: "[side]", Kind: "side_stack"},
		{Symbol: "[botm]", Kind: "bottom_stack"},
		{Symbol: "[cols]", Kind: "columns"},
		{Symbol: "[mono]", Kind: "monocle", FollowFocus: true, Gapless: true},
	}
}

func defaultBindings() map[string]string {
	b := map[string]string{
		"M-j":      "cycle_client forward",
		"M-k":      "cycle_client backward",
		"M-S-j":    "drag_client forward",
		"M-S-k":    "drag_client backward",
		"M-Tab":    "cycle_layout forward",
		"M-S-Tab":  "cycle_layout backward",
		"M-i":      "max_main more",
		"M-d":      "max_main less",
		"M-l":      "main_ratio more",
		"M-h":      "main_ratio less",
		"M-q":      "kill",
		"M-S-q":    "destroy",
		"M-Return": "spawn x-terminal-emulator",
		"C-M-S-q":  "quit",
	}
	for i := 1; i <= 9; i++ {
		b[fmt.Sprintf("M-%d", i)] = fmt.Sprintf("workspace %d", i)
		b[fmt.Sprintf("M-S-%d", i)] = fmt.Sprintf("send_to_workspace %d", i)
	}
	return b
}

func (c *Config) applyDefaults() {
	if len(c.Workspaces) == 0 {
		c.Workspaces = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	}
	if c.Layouts == nil {
		c.Layouts = defaultLayouts()
	}
	if c.Bindings == nil {
		c.Bindings = defaultBindings()
	}
	if c.BorderWidth == 0 {
		c.BorderWidth = 1
	}
	if c.RatioStep == 0 {
		c.RatioStep = 0.05
	}
	if c.FocusedBorder == "" {
		c.FocusedBorder = "#cc241d"
	}
	if c.UnfocusedBorder == "" {
		c.UnfocusedBorder = "#3c3836"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	for i := range c.Layouts {
		l := &c.Layouts[i]
		if l.MaxMain == nil {
			n := uint(defaultMaxMain)
			l.MaxMain = &n
		}
		if l.Ratio == nil {
			r := defaultRatio
			l.Ratio = &r
		}
		if l.Symbol == "" {
			l.Symbol = l.Kind
		}
	}
}

// Load reads the configuration file at path. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrNoLayouts is returned by Validate when no layout is configured.
var ErrNoLayouts = errors.New("at least one layout is required")

// Validate checks the configuration for values the window manager
// cannot start with.
func (c *Config) Validate() error {
	if len(c.Workspaces) == 0 {
		return errors.New("at least one workspace is required")
	}
	seen := make(map[string]bool, len(c.Workspaces))
	for _, name := range c.Workspaces {
		if name == "" {
			return errors.New("workspace names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate workspace %q", name)
		}
		seen[name] = true
	}
	if len(c.Layouts) == 0 {
		return ErrNoLayouts
	}
	for i, l := range c.Layouts {
		if _, ok := layout.ByName(l.Kind); !ok {
			return fmt.Errorf("layout %d: unknown kind %q (want one of %s)",
				i, l.Kind, strings.Join(layout.Kinds(), ", "))
		}
		if l.Ratio != nil && (*l.Ratio < 0 || *l.Ratio > 1) {
			return fmt.Errorf("layout %d: ratio %v out of [0, 1]", i, *l.Ratio)
		}
	}
	if c.RatioStep <= 0 || c.RatioStep > 1 {
		return fmt.Errorf("ratio_step %v out of (0, 1]", c.RatioStep)
	}
	if _, err := ParseColor(c.FocusedBorder); err != nil {
		return fmt.Errorf("focused_border: %w", err)
	}
	if _, err := ParseColor(c.UnfocusedBorder); err != nil {
		return fmt.Errorf("unfocused_border: %w", err)
	}
	return nil
}

// BuildLayouts builds a fresh set of layouts. Each workspace needs its own
// set since layout parameters are adjusted per workspace.
func (c *Config) BuildLayouts() []*layout.Layout {
	out := make([]*layout.Layout, 0, len(c.Layouts))
	for _, l := range c.Layouts {
		fn, ok := layout.ByName(l.Kind)
		if !ok {
			continue
		}
		maxMain := uint(defaultMaxMain)
		if l.MaxMain != nil {
			maxMain = *l.MaxMain
		}
		ratio := defaultRatio
		if l.Ratio != nil {
			ratio = *l.Ratio
		}
		conf := layout.Conf{FollowFocus: l.FollowFocus, Gapless: l.Gapless}
		out = append(out, layout.New(l.Symbol, conf, fn, maxMain, ratio))
	}
	return out
}

// ParseColor parses a "#rrggbb" color into an X11 pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
