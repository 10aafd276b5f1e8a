package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("# comment\nName: Mine\nbackground: #102030\nGrip: #01020380\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Mine" {
		t.Fatalf("name %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Fatalf("background %v", th.Background)
	}
	if th.Grip != (color.RGBA{1, 2, 3, 0x80}) {
		t.Fatalf("grip %v", th.Grip)
	}
	if th.StatusText != Default().StatusText {
		t.Fatalf("unset key lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: 102030\n")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatalf("expected length error")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	src := Default()
	src.CanvasShadow = color.RGBA{1, 2, 3, 4}
	var sb strings.Builder
	for _, kv := range src.Fields() {
		sb.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got.Name = src.Name
	if *got != *src {
		t.Fatalf("round trip mismatch\n got %+v\nwant %+v", got, src)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected embedded themes, got %v", names)
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("Load(%q): %v", n, err)
		}
		if th.Name == "" {
			t.Fatalf("theme %q has no name", n)
		}
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Inline: map[string]*Theme{"inline": {Name: "Inline"}}}
	if th, err := l.Load("ocean"); err != nil || th.Name != "Ocean" {
		t.Fatalf("config dir theme: %v %v", th, err)
	}
	if th, err := l.Load("inline"); err != nil || th.Name != "Inline" {
		t.Fatalf("inline theme: %v %v", th, err)
	}
	if th, err := l.Load(filepath.Join(dir, "ocean.theme")); err != nil || th.Name != "Ocean" {
		t.Fatalf("path theme: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected not found")
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("empty name: %v %v", th, err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv(EnvVar, "dark")
	if got := Resolve("light", "cfg"); got != "light" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := Resolve("", "cfg"); got != "dark" {
		t.Fatalf("env should beat config, got %q", got)
	}
	t.Setenv(EnvVar, "")
	if got := Resolve("", "cfg"); got != "cfg" {
		t.Fatalf("config fallback, got %q", got)
	}
}
