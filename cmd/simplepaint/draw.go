package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/simplepaint/internal/appstate"
	"github.com/example/simplepaint/internal/clipboard"
	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/surface"
)

var writeClipboardImage = clipboard.WriteImage

// drawOp is one headless editing step.
type drawOp struct {
	name string
	args []int
}

// drawCmd replays pointer gestures against a fresh document and saves it.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	output      string
	sizeArg     string
	colorSpec   string
	width       int
	eraserWidth int
	undo        int
	toClipboard bool
	ops         []drawOp
	stdout      io.Writer
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

var drawFlagNames = map[string]struct{}{
	"output":       {},
	"size":         {},
	"color":        {},
	"width":        {},
	"eraser-width": {},
	"undo":         {},
	"to-clipboard": {},
	"to-clip":      {},
	"h":            {},
	"help":         {},
}

var drawBoolFlags = map[string]struct{}{
	"to-clipboard": {},
	"to-clip":      {},
	"h":            {},
	"help":         {},
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(d)
	size := "200x200"
	if r != nil && r.config != nil {
		size = formatSize(r.config.CanvasSize())
	}
	fs.StringVar(&d.output, "output", "", "bitmap file to write (required)")
	fs.StringVar(&d.sizeArg, "size", size, "canvas size as WIDTHxHEIGHT")
	fs.StringVar(&d.colorSpec, "color", "", "pen and fill color name or hex value (defaults to the configured pen color)")
	fs.IntVar(&d.width, "width", 0, "pen width in pixels (1, 2, 4 or 8)")
	fs.IntVar(&d.eraserWidth, "eraser-width", 0, "eraser width in pixels (1, 2, 4 or 8)")
	fs.IntVar(&d.undo, "undo", 0, "undo this many edits before saving")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if d.output == "" {
		return nil, fmt.Errorf("output file is required")
	}
	if d.undo < 0 {
		return nil, fmt.Errorf("undo count cannot be negative")
	}
	d.ops, err = parseDrawOps(positionals)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// parseDrawOps splits positionals into operations separated by "," tokens
// or a trailing comma on an argument.
func parseDrawOps(positionals []string) ([]drawOp, error) {
	var groups [][]string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			groups = append(groups, cur)
			cur = nil
		}
	}
	for _, tok := range positionals {
		for i, part := range strings.Split(tok, ",") {
			if i > 0 {
				flush()
			}
			if part = strings.TrimSpace(part); part != "" {
				cur = append(cur, part)
			}
		}
	}
	flush()
	if len(groups) == 0 {
		return nil, fmt.Errorf("no operations given")
	}
	ops := make([]drawOp, 0, len(groups))
	for _, g := range groups {
		name := strings.ToLower(g[0])
		var (
			vals []int
			err  error
		)
		switch name {
		case "line", "erase":
			vals, err = expectInts(g[1:], 4, name)
		case "fill", "pick":
			vals, err = expectInts(g[1:], 2, name)
		case "resize":
			vals, err = expectInts(g[1:], 2, name)
			if err == nil && (vals[0] < 1 || vals[1] < 1) {
				err = fmt.Errorf("resize requires a positive size")
			}
		default:
			err = fmt.Errorf("unsupported operation %q", g[0])
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, drawOp{name: name, args: vals})
	}
	return ops, nil
}

func expectInts(args []string, n int, op string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", op, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) Run() error {
	doc, err := d.newDocument()
	if err != nil {
		return err
	}
	for _, op := range d.ops {
		if err := d.apply(doc, op); err != nil {
			return err
		}
	}
	for i := 0; i < d.undo; i++ {
		if !doc.Undo() {
			fmt.Fprintf(os.Stderr, "only %d edits to undo\n", i)
			break
		}
	}
	if err := doc.Save(d.output); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifySave(saved)
	if d.toClipboard {
		img := doc.Surface().ToRGBA()
		if err := writeClipboardImage(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if d.root != nil && d.notifier != nil {
			d.notifier.Copy(detail, img)
		}
	}
	return nil
}

func (d *drawCmd) newDocument() (*document.Document, error) {
	size, err := parseSize(d.sizeArg)
	if err != nil {
		return nil, err
	}
	var opts []document.Option
	if d.root != nil && d.config != nil {
		if opts, err = documentOptions(d.config, size); err != nil {
			return nil, err
		}
	} else {
		opts = append(opts, document.WithCanvasSize(size))
	}
	if d.colorSpec != "" {
		c, err := appstate.ParseColor(d.colorSpec)
		if err != nil {
			return nil, err
		}
		opts = append(opts, document.WithPenColor(c))
	}
	if d.width != 0 {
		opts = append(opts, document.WithPenWidth(d.width))
	}
	if d.eraserWidth != 0 {
		opts = append(opts, document.WithEraserWidth(d.eraserWidth))
	}
	// Capacity covers every resize the operations ask for so that shrinking
	// and growing again keeps the hidden pixels.
	maxSize := size
	for _, op := range d.ops {
		if op.name == "resize" {
			maxSize.X = max(maxSize.X, op.args[0])
			maxSize.Y = max(maxSize.Y, op.args[1])
		}
	}
	return document.New(maxSize, opts...)
}

func (d *drawCmd) apply(doc *document.Document, op drawOp) error {
	a := op.args
	switch op.name {
	case "line", "erase":
		tool := document.ToolPen
		if op.name == "erase" {
			tool = document.ToolEraser
		}
		doc.SelectTool(tool)
		gesture(doc, image.Pt(a[0], a[1]), image.Pt(a[2], a[3]))
	case "fill":
		doc.SelectTool(document.ToolFill)
		p := image.Pt(a[0], a[1])
		gesture(doc, p, p)
	case "pick":
		p := image.Pt(a[0], a[1])
		if !p.In(doc.Surface().Bounds()) {
			return fmt.Errorf("pick %d %d is outside the %s canvas", a[0], a[1], formatSize(doc.Size()))
		}
		doc.SelectTool(document.ToolColorPicker)
		gesture(doc, p, p)
		fmt.Fprintln(d.stdout, describeColor(doc.PenColor()))
	case "resize":
		if _, err := doc.SetCanvasSize(image.Pt(a[0], a[1])); err != nil {
			return err
		}
	}
	return nil
}

// gesture replays a press at from, a drag to to and a release.
func gesture(doc *document.Document, from, to image.Point) {
	doc.PointerDown(from)
	if to != from {
		doc.PointerMove(to)
	}
	doc.PointerUp(to)
}

func describeColor(c surface.Color) string {
	if idx := appstate.PaletteIndex(c); idx >= 0 {
		return fmt.Sprintf("%s %s", c.Hex(), appstate.PaletteColors()[idx].Name)
	}
	return c.Hex()
}

func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			// Negative coordinates.
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag -%s requires a value", base)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
