package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"strings"
	"testing"

	"github.com/example/simplepaint/internal/config"
	"github.com/example/simplepaint/internal/display"
	"github.com/example/simplepaint/internal/document"
)

func testRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("simplepaint", flag.ContinueOnError),
		program: "simplepaint",
		config:  config.New(),
	}
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use")
	return r
}

func TestParseSize(t *testing.T) {
	got, err := parseSize(" 640X480 ")
	if err != nil || got != image.Pt(640, 480) {
		t.Fatalf("parseSize = %v, %v", got, err)
	}
	for _, bad := range []string{"640", "ax4", "4xb", "0x10", "-3x4", ""} {
		if _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) should fail", bad)
		}
	}
}

func TestCanvasCapacity(t *testing.T) {
	monitors := []display.Monitor{
		{Rect: image.Rect(0, 0, 1920, 1080)},
		{Rect: image.Rect(1920, 0, 3200, 1024)},
	}
	if got := canvasCapacity(monitors, image.Pt(800, 600)); got != image.Pt(3200, 1080) {
		t.Fatalf("capacity = %v", got)
	}
	if got := canvasCapacity(nil, image.Pt(800, 600)); got != image.Pt(800, 600) {
		t.Fatalf("without monitors capacity = %v", got)
	}
}

func TestDocumentOptionsFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.PenColor = "red"
	cfg.PenWidth = 2
	cfg.EraserWidth = 4
	opts, err := documentOptions(cfg, image.Pt(30, 20))
	if err != nil {
		t.Fatalf("documentOptions: %v", err)
	}
	doc, err := document.New(image.Pt(30, 20), opts...)
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	if doc.PenWidth() != 2 || doc.EraserWidth() != 4 || doc.PenColor().Hex() != "#FF0000" {
		t.Fatalf("options not applied: width %d eraser %d color %s", doc.PenWidth(), doc.EraserWidth(), doc.PenColor().Hex())
	}

	cfg.PenColor = "not-a-color"
	if _, err := documentOptions(cfg, image.Pt(30, 20)); err == nil {
		t.Fatalf("expected pen_color error")
	}
}

func TestHelpTemplatesRender(t *testing.T) {
	r := testRoot()
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	cases := []HelpData{
		r,
		&paintCmd{root: r.subcommand("paint"), fs: fs},
		&drawCmd{root: r.subcommand("draw"), fs: fs},
		&colorsCmd{root: r.subcommand("colors"), fs: fs},
		&widthsCmd{root: r.subcommand("widths"), fs: fs},
		&displaysCmd{root: r.subcommand("displays"), fs: fs},
		&configCmd{root: r.subcommand("config"), fs: fs},
		&versionCmd{r: r},
	}
	for _, hd := range cases {
		help, err := (&UsageError{of: hd}).renderHelp()
		if err != nil {
			t.Fatalf("%s: %v", hd.Template(), err)
		}
		if !strings.Contains(help, "Usage: "+hd.Program()) {
			t.Errorf("%s help missing usage line:\n%s", hd.Template(), help)
		}
	}
}

func TestRootHelpListsFlags(t *testing.T) {
	help := (&UsageError{of: testRoot()}).Error()
	if !strings.Contains(help, "-theme") || !strings.Contains(help, "draw") {
		t.Fatalf("root help incomplete:\n%s", help)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	err := testRoot().Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestColorsMarksDefault(t *testing.T) {
	cmd, err := parseColorsCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.stdout = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	var marked []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "*") {
			marked = append(marked, line)
		}
	}
	if len(marked) != 1 || !strings.Contains(marked[0], "#0063B1") {
		t.Fatalf("default marker lines = %q", marked)
	}
}

func TestWidthsMarksDefault(t *testing.T) {
	cmd, err := parseWidthsCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.stdout = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"    1px", "    2px", "    4px", "*   8px"} {
		if !strings.Contains(out, want) {
			t.Errorf("widths output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplaysError(t *testing.T) {
	original := listMonitors
	sentinel := errors.New("no X")
	listMonitors = func() ([]display.Monitor, error) { return nil, sentinel }
	t.Cleanup(func() { listMonitors = original })

	cmd, err := parseDisplaysCmd(nil, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestConfigRequiresSubcommand(t *testing.T) {
	_, err := parseConfigCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	cmd, err := parseConfigCmd([]string{"frobnicate"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestConfigRejectsUnknownFormat(t *testing.T) {
	if _, err := parseConfigCmd([]string{"-format", "toml", "print"}, testRoot()); err == nil {
		t.Fatalf("expected format error")
	}
}
