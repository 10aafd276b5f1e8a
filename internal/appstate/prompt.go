package appstate

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"

	"github.com/example/simplepaint/internal/document"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptUnsaved
	promptPath
)

// prompt is the inline replacement for modal dialogs. While one is open it
// receives every key press.
type prompt struct {
	kind     promptKind
	question string
	input    string
	// then names the action to resume once the prompt is answered.
	then string
}

// promptResult is what a key press did to the prompt.
type promptResult struct {
	done   bool
	choice document.Choice
	path   string
}

func unsavedPrompt(name, then string) prompt {
	return prompt{
		kind:     promptUnsaved,
		question: fmt.Sprintf("Save changes to %s? [Y]es  [N]o  [Esc] cancel", name),
		then:     then,
	}
}

func pathPrompt(initial, then string) prompt {
	return prompt{kind: promptPath, question: "Save as:", input: initial, then: then}
}

func (p *prompt) active() bool { return p.kind != promptNone }

// text is the line shown in the prompt box.
func (p *prompt) text() string {
	if p.kind == promptPath {
		return p.question + " " + p.input + "|"
	}
	return p.question
}

func (p *prompt) handleKey(e key.Event) promptResult {
	if e.Direction == key.DirRelease {
		return promptResult{}
	}
	switch p.kind {
	case promptUnsaved:
		switch {
		case e.Code == key.CodeEscape:
			return promptResult{done: true, choice: document.ChoiceCancel}
		case unicode.ToLower(e.Rune) == 'y' || e.Code == key.CodeReturnEnter:
			return promptResult{done: true, choice: document.ChoiceSave}
		case unicode.ToLower(e.Rune) == 'n':
			return promptResult{done: true, choice: document.ChoiceDiscard}
		}
	case promptPath:
		switch e.Code {
		case key.CodeEscape:
			return promptResult{done: true, choice: document.ChoiceCancel}
		case key.CodeReturnEnter:
			if p.input == "" {
				return promptResult{}
			}
			return promptResult{done: true, choice: document.ChoiceSave, path: p.input}
		case key.CodeDeleteBackspace:
			if p.input != "" {
				_, n := utf8.DecodeLastRuneInString(p.input)
				p.input = p.input[:len(p.input)-n]
			}
			return promptResult{}
		}
		if e.Rune > 0 && unicode.IsPrint(e.Rune) && e.Modifiers&key.ModControl == 0 {
			p.input += string(e.Rune)
		}
	}
	return promptResult{}
}
