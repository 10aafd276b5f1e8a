package config

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/simplepaint/internal/theme"
)

func TestParseYAML(t *testing.T) {
	input := `
theme: dark
canvas_width: 320
pen_color: "#112233"
notify:
  save: true
themes:
  night:
    Background: "#000000"
    CanvasShadow: "#10203040"
`
	cfg, err := ParseYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.Theme != "dark" || cfg.CanvasWidth != 320 || cfg.PenColor != "#112233" || !cfg.Notify.Save {
		t.Errorf("root fields wrong: %+v", cfg)
	}
	if cfg.CanvasHeight != DefaultCanvasHeight || cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("defaults lost: height %d limit %d", cfg.CanvasHeight, cfg.HistoryLimit)
	}
	night := cfg.Themes["night"]
	if night == nil {
		t.Fatalf("theme night missing")
	}
	if night.Name != "night" || night.Background != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("night theme = %+v", night)
	}
	if night.CanvasShadow != (color.RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Errorf("shadow = %v", night.CanvasShadow)
	}
	if night.Grip != theme.Default().Grip {
		t.Errorf("unset keys should keep defaults")
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	cfg, err := ParseYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.CanvasSize() != New().CanvasSize() {
		t.Errorf("empty file should give defaults, got %v", cfg.CanvasSize())
	}
}

func TestParseYAMLErrors(t *testing.T) {
	for _, input := range []string{
		"canvas_width: -4\n",
		"canvas_width: wide\n",
		"themes:\n  x:\n    Background: nope\n",
	} {
		if _, err := ParseYAML(strings.NewReader(input)); err == nil {
			t.Errorf("ParseYAML(%q) should fail", input)
		}
	}
}

func TestSaveYAMLThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := New()
	cfg.PenWidth = 4
	cfg.LogFile = "/tmp/paint.log"
	cfg.Themes["mine"] = theme.Default()
	cfg.Themes["mine"].Name = "mine"
	cfg.Themes["mine"].Grip = color.RGBA{1, 2, 3, 255}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PenWidth != 4 || got.LogFile != "/tmp/paint.log" {
		t.Errorf("root fields not round-tripped: %+v", got)
	}
	if m := got.Themes["mine"]; m == nil || m.Grip != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("theme not round-tripped: %+v", m)
	}
}

func TestIsYAML(t *testing.T) {
	for path, want := range map[string]bool{"a.yaml": true, "b.YML": true, "c.rc": false, ".simplepaintrc": false} {
		if got := IsYAML(path); got != want {
			t.Errorf("IsYAML(%q) = %v", path, got)
		}
	}
}
