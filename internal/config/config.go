package config

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/simplepaint/internal/theme"
)

// Default canvas and history settings used when the file leaves them unset.
const (
	DefaultCanvasWidth   = 800
	DefaultCanvasHeight  = 600
	DefaultHistoryLimit  = 100
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string

	CanvasWidth  int
	CanvasHeight int
	PenColor     string
	PenWidth     int
	EraserWidth  int
	HistoryLimit int

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:         "", // Default to empty to allow fallback to Env/Default
		CanvasWidth:   DefaultCanvasWidth,
		CanvasHeight:  DefaultCanvasHeight,
		HistoryLimit:  DefaultHistoryLimit,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		Themes:        make(map[string]*theme.Theme),
	}
}

// CanvasSize is the initial canvas size of a new document.
func (c *Config) CanvasSize() image.Point {
	return image.Pt(c.CanvasWidth, c.CanvasHeight)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	if c.PenColor != "" {
		fmt.Fprintf(&sb, "pen_color = %q\n", c.PenColor)
	}
	if c.PenWidth != 0 {
		fmt.Fprintf(&sb, "pen_width = %d\n", c.PenWidth)
	}
	if c.EraserWidth != 0 {
		fmt.Fprintf(&sb, "eraser_width = %d\n", c.EraserWidth)
	}
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	if c.LogFile != "" {
		fmt.Fprintf(&sb, "log_file = %s\n", c.LogFile)
	}
	fmt.Fprintf(&sb, "log_max_size_mb = %d\n", c.LogMaxSizeMB)
	fmt.Fprintf(&sb, "log_max_backups = %d\n", c.LogMaxBackups)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Save writes the configuration to path, creating parent directories. A
// .yaml or .yml path is written as YAML, anything else in rc format.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data := []byte(c.String())
	if IsYAML(path) {
		var err error
		if data, err = c.YAML(); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
