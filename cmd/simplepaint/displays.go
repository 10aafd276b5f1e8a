package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/simplepaint/internal/display"
)

var listMonitors = display.ListMonitors

type displaysCmd struct {
	*root
	fs *flag.FlagSet
}

func parseDisplaysCmd(args []string, r *root) (*displaysCmd, error) {
	fs := flag.NewFlagSet("displays", flag.ExitOnError)
	cmd := &displaysCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *displaysCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		return fmt.Errorf("failed to list displays: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stdout, "no displays available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "available displays (* marks the primary display):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		r := m.Rect
		fmt.Fprintf(os.Stdout, "%s %d: %-10s %dx%d+%d+%d %.0f dpi\n", marker, m.Index, m.Name, r.Dx(), r.Dy(), r.Min.X, r.Min.Y, m.DPI())
	}
	fmt.Fprintf(os.Stdout, "largest canvas: %s\n", formatSize(canvasCapacity(monitors, c.config.CanvasSize())))
	return nil
}

func (c *displaysCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *displaysCmd) Template() string {
	return "displays.txt"
}
