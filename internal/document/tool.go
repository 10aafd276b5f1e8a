package document

import (
	"errors"
	"fmt"
	"strings"
)

// Tool is the active painting tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolFill
	ToolColorPicker
)

var toolNames = [...]string{
	ToolPen:         "pen",
	ToolEraser:      "eraser",
	ToolFill:        "fill",
	ToolColorPicker: "picker",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Drags reports whether the tool paints during a pointer gesture.
func (t Tool) Drags() bool {
	return t == ToolPen || t == ToolEraser || t == ToolFill
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolPen, ToolEraser, ToolFill, ToolColorPicker}
}

// ParseTool resolves a tool by name.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "colorpicker" || name == "color-picker" {
		name = "picker"
	}
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// ErrInvalidWidth is returned for stroke widths outside Widths.
var ErrInvalidWidth = errors.New("invalid stroke width")

var widths = []int{1, 2, 4, 8}

// Widths returns the stroke widths available to the pen and the eraser.
func Widths() []int {
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// DefaultWidth is the initial pen and eraser width.
const DefaultWidth = 8

func validWidth(w int) error {
	for _, v := range widths {
		if v == w {
			return nil
		}
	}
	return fmt.Errorf("%w: %d (want one of %v)", ErrInvalidWidth, w, widths)
}
