package config

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/simplepaint/internal/theme"
)

// yamlFile is the YAML layout of Config. Themes are kept as key/hex maps so
// they read the same as the rc sections.
type yamlFile struct {
	Theme         string                       `yaml:"theme,omitempty"`
	SaveDir       string                       `yaml:"save_dir,omitempty"`
	CanvasWidth   int                          `yaml:"canvas_width"`
	CanvasHeight  int                          `yaml:"canvas_height"`
	PenColor      string                       `yaml:"pen_color,omitempty"`
	PenWidth      int                          `yaml:"pen_width,omitempty"`
	EraserWidth   int                          `yaml:"eraser_width,omitempty"`
	HistoryLimit  int                          `yaml:"history_limit"`
	LogFile       string                       `yaml:"log_file,omitempty"`
	LogMaxSizeMB  int                          `yaml:"log_max_size_mb"`
	LogMaxBackups int                          `yaml:"log_max_backups"`
	Notify        yamlNotify                   `yaml:"notify"`
	Themes        map[string]map[string]string `yaml:"themes,omitempty"`
}

type yamlNotify struct {
	Save bool `yaml:"save"`
	Copy bool `yaml:"copy"`
}

// IsYAML reports whether path should be read and written as YAML.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ParseYAML reads a YAML configuration. Keys left out keep their defaults.
func ParseYAML(r io.Reader) (*Config, error) {
	def := New()
	f := yamlFile{
		CanvasWidth:   def.CanvasWidth,
		CanvasHeight:  def.CanvasHeight,
		HistoryLimit:  def.HistoryLimit,
		LogMaxSizeMB:  def.LogMaxSizeMB,
		LogMaxBackups: def.LogMaxBackups,
	}
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	for key, n := range map[string]int{
		"canvas_width":    f.CanvasWidth,
		"canvas_height":   f.CanvasHeight,
		"pen_width":       f.PenWidth,
		"eraser_width":    f.EraserWidth,
		"history_limit":   f.HistoryLimit,
		"log_max_size_mb": f.LogMaxSizeMB,
		"log_max_backups": f.LogMaxBackups,
	} {
		if n < 0 {
			return nil, fmt.Errorf("invalid number for key %s: %d", key, n)
		}
	}
	cfg := &Config{
		Theme:         f.Theme,
		SaveDir:       f.SaveDir,
		CanvasWidth:   f.CanvasWidth,
		CanvasHeight:  f.CanvasHeight,
		PenColor:      f.PenColor,
		PenWidth:      f.PenWidth,
		EraserWidth:   f.EraserWidth,
		HistoryLimit:  f.HistoryLimit,
		LogFile:       f.LogFile,
		LogMaxSizeMB:  f.LogMaxSizeMB,
		LogMaxBackups: f.LogMaxBackups,
		Notify:        Notify{Save: f.Notify.Save, Copy: f.Notify.Copy},
		Themes:        make(map[string]*theme.Theme, len(f.Themes)),
	}
	for name, fields := range f.Themes {
		t := theme.Default()
		t.Name = name
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := t.Set(k, fields[k]); err != nil {
				return nil, fmt.Errorf("theme %s: %w", name, err)
			}
		}
		cfg.Themes[name] = t
	}
	return cfg, nil
}

// YAML renders the configuration in the layout ParseYAML reads.
func (c *Config) YAML() ([]byte, error) {
	f := yamlFile{
		Theme:         c.Theme,
		SaveDir:       c.SaveDir,
		CanvasWidth:   c.CanvasWidth,
		CanvasHeight:  c.CanvasHeight,
		PenColor:      c.PenColor,
		PenWidth:      c.PenWidth,
		EraserWidth:   c.EraserWidth,
		HistoryLimit:  c.HistoryLimit,
		LogFile:       c.LogFile,
		LogMaxSizeMB:  c.LogMaxSizeMB,
		LogMaxBackups: c.LogMaxBackups,
		Notify:        yamlNotify{Save: c.Notify.Save, Copy: c.Notify.Copy},
	}
	if len(c.Themes) > 0 {
		f.Themes = make(map[string]map[string]string, len(c.Themes))
		for name, t := range c.Themes {
			fields := make(map[string]string)
			for _, kv := range t.Fields() {
				fields[kv[0]] = kv[1]
			}
			f.Themes[name] = fields
		}
	}
	return yaml.Marshal(&f)
}
