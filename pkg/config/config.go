// Package config loads optional radioguide settings from a TOML file.
//
// Every field is optional; unset fields keep the pipeline defaults.
//
//	[guide]
//	title  = "Black Rock Radio 2025"
//	color  = "#ffff00"
//	fonts  = ["LiberationSans-Bold.ttf", "arial.ttf"]
//	backdrop = "#00000080"
//	frequency_column = "Frequency"
//	station_column   = "Station ID"
//	delimiter = ","
//	quality = 95
//
//	[resize]
//	aspect  = "5x3"
//	width   = 1500
//	quality = 95
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
)

// Config is the decoded configuration file.
type Config struct {
	Guide  Guide  `toml:"guide"`
	Resize Resize `toml:"resize"`
}

// Guide holds settings for the frequency guide.
type Guide struct {
	Image           string   `toml:"image"`
	Table           string   `toml:"table"`
	Output          string   `toml:"output"`
	Title           string   `toml:"title"`
	Color           string   `toml:"color"`
	Backdrop        string   `toml:"backdrop"`
	Fonts           []string `toml:"fonts"`
	FrequencyColumn string   `toml:"frequency_column"`
	StationColumn   string   `toml:"station_column"`
	Delimiter       string   `toml:"delimiter"`
	Quality         int      `toml:"quality"`
}

// Resize holds settings for the print resize.
type Resize struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Aspect  string `toml:"aspect"`
	Width   int    `toml:"width"`
	Quality int    `toml:"quality"`
}

// Load decodes the file at path. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rgerrors.Wrap(rgerrors.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return &c, nil
}

// Validate checks values that can be checked without touching the disk.
func (c *Config) Validate() error {
	if c.Guide.Color != "" {
		if _, err := ParseColor(c.Guide.Color); err != nil {
			return fmt.Errorf("guide.color: %w", err)
		}
	}
	if c.Guide.Backdrop != "" {
		if _, err := ParseColor(c.Guide.Backdrop); err != nil {
			return fmt.Errorf("guide.backdrop: %w", err)
		}
	}
	if c.Guide.Delimiter != "" && utf8.RuneCountInString(c.Guide.Delimiter) != 1 {
		return fmt.Errorf("guide.delimiter: want a single character, got %q", c.Guide.Delimiter)
	}
	for _, q := range []struct {
		key string
		v   int
	}{{"guide.quality", c.Guide.Quality}, {"resize.quality", c.Resize.Quality}} {
		if q.v < 0 || q.v > 100 {
			return fmt.Errorf("%s: want 1-100, got %d", q.key, q.v)
		}
	}
	if c.Resize.Width < 0 {
		return fmt.Errorf("resize.width: want a positive width, got %d", c.Resize.Width)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 when unset.
func (g Guide) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(g.Delimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading # is
// optional). Omitted alpha is opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #rrggbb or #rrggbbaa)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
