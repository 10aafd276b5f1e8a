package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"

	"github.com/example/simplepaint/internal/appstate"
	"github.com/example/simplepaint/internal/display"
	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/render"
)

type paintCmd struct {
	*root
	fs      *flag.FlagSet
	sizeArg string
	size    image.Point
	output  string
	saveDir string
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.sizeArg, "size", formatSize(r.config.CanvasSize()), "initial canvas size as WIDTHxHEIGHT")
	fs.StringVar(&p.output, "output", "", "file to save to without asking")
	fs.StringVar(&p.saveDir, "save-dir", r.config.SaveDir, "directory offered when saving a new picture")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	size, err := parseSize(p.sizeArg)
	if err != nil {
		return nil, err
	}
	p.size = size
	return p, nil
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *paintCmd) Template() string {
	return "paint.txt"
}

func (p *paintCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		log.Printf("display layout unavailable: %v", err)
	}
	maxSize := canvasCapacity(monitors, p.size)
	dpi := float64(render.BaseDPI)
	if m, err := display.Primary(monitors); err == nil {
		dpi = m.DPI()
	}

	opts, err := documentOptions(p.config, p.size)
	if err != nil {
		return err
	}
	doc, err := document.New(maxSize, opts...)
	if err != nil {
		return fmt.Errorf("allocate %s canvas: %w", formatSize(maxSize), err)
	}
	log.Printf("canvas %s, capacity %s, %.0f dpi", formatSize(doc.Size()), formatSize(maxSize), dpi)

	st := appstate.New(doc,
		appstate.WithOutput(p.output),
		appstate.WithSaveDir(p.saveDir),
		appstate.WithTheme(p.activeTheme),
		appstate.WithDPI(dpi),
		appstate.WithNotifier(p.notifier),
		appstate.WithNewWindow(p.spawn),
		appstate.WithOnClose(func() {
			if doc.Dirty() {
				log.Printf("closing %s with unsaved changes", doc.Name())
			}
		}),
	)
	st.Run()
	return nil
}

// spawn starts an independent paint process sharing nothing with this one.
func (p *paintCmd) spawn() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	args := []string{}
	if p.themeName != "" {
		args = append(args, "-theme", p.themeName)
	}
	args = append(args, "paint", "-size", formatSize(p.size))
	if p.saveDir != "" {
		args = append(args, "-save-dir", p.saveDir)
	}
	cmd := exec.Command(exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("paint window exited: %v", err)
		}
	}()
	return nil
}
