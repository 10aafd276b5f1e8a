package history

import "github.com/example/simplepaint/internal/surface"

// Stack holds the undo and redo patch stacks. A limit above zero bounds the
// undo depth; the oldest patch is dropped first.
type Stack struct {
	undo  []Patch
	redo  []Patch
	limit int
}

func NewStack(limit int) *Stack {
	if limit < 0 {
		limit = 0
	}
	return &Stack{limit: limit}
}

// Record pushes a new edit and invalidates the redo stack.
func (h *Stack) Record(p Patch) {
	h.undo = append(h.undo, p)
	if h.limit > 0 && len(h.undo) > h.limit {
		drop := len(h.undo) - h.limit
		copy(h.undo, h.undo[drop:])
		for i := len(h.undo) - drop; i < len(h.undo); i++ {
			h.undo[i] = Patch{}
		}
		h.undo = h.undo[:h.limit]
	}
	h.redo = nil
}

// Undo reverts the most recent edit on s. It reports false when there is
// nothing to undo.
func (h *Stack) Undo(s *surface.Surface) bool {
	p, ok := pop(&h.undo)
	if !ok {
		return false
	}
	h.redo = append(h.redo, swap(p, s))
	return true
}

// Redo re-applies the most recently undone edit.
func (h *Stack) Redo(s *surface.Surface) bool {
	p, ok := pop(&h.redo)
	if !ok {
		return false
	}
	h.undo = append(h.undo, swap(p, s))
	return true
}

func (h *Stack) CanUndo() bool { return len(h.undo) > 0 }

func (h *Stack) CanRedo() bool { return len(h.redo) > 0 }

func (h *Stack) UndoLen() int { return len(h.undo) }

func (h *Stack) RedoLen() int { return len(h.redo) }

func (h *Stack) Limit() int { return h.limit }

// Clear empties both stacks.
func (h *Stack) Clear() {
	h.undo = nil
	h.redo = nil
}

// PeekUndo returns the patch Undo would apply next.
func (h *Stack) PeekUndo() (Patch, bool) {
	if len(h.undo) == 0 {
		return Patch{}, false
	}
	return h.undo[len(h.undo)-1], true
}

// PeekRedo returns the patch Redo would apply next.
func (h *Stack) PeekRedo() (Patch, bool) {
	if len(h.redo) == 0 {
		return Patch{}, false
	}
	return h.redo[len(h.redo)-1], true
}

func swap(p Patch, s *surface.Surface) Patch {
	inv := ComputeInverse(p, s)
	Apply(p, s)
	return inv
}

func pop(stack *[]Patch) (Patch, bool) {
	n := len(*stack)
	if n == 0 {
		return Patch{}, false
	}
	p := (*stack)[n-1]
	(*stack)[n-1] = Patch{}
	*stack = (*stack)[:n-1]
	return p, true
}
