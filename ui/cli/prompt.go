// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/choose/internal/choice"
)

// clearLine erases the current line and returns the cursor to its start.
const clearLine = "\x1b[2K\r"

// promptRenderer formats the prompt line. Styles are bound to the writer the
// prompt goes to, so nothing is coloured when that writer is not a terminal.
type promptRenderer struct {
	choice lipgloss.Style
	def    lipgloss.Style
}

func newPromptRenderer(w io.Writer) promptRenderer {
	r := lipgloss.NewRenderer(w)
	return promptRenderer{
		choice: r.NewStyle().Bold(true),
		def:    r.NewStyle().Bold(true).Underline(true),
	}
}

// Shown reports whether Render produces any output for o.
func (p promptRenderer) Shown(o choice.Options) bool {
	return o.Message != "" || !o.HideChoices
}

// Render returns the message followed by "[A,B,C]?" unless the choices are
// hidden. The default choice, if any, is underlined.
func (p promptRenderer) Render(o choice.Options) string {
	var b strings.Builder
	b.WriteString(o.Message)
	if o.HideChoices {
		return b.String()
	}

	def := -1
	if o.HasDefault() {
		def = o.Index(o.Default)
	}
	b.WriteByte('[')
	for i := 0; i < len(o.Choices); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		style := p.choice
		if i == def {
			style = p.def
		}
		b.WriteString(style.Render(o.Choices[i : i+1]))
	}
	b.WriteString("]?")
	return b.String()
}

// Clear returns the sequence that removes a rendered prompt, or "" when
// nothing was shown.
func (p promptRenderer) Clear(o choice.Options) string {
	if !p.Shown(o) {
		return ""
	}
	return clearLine
}
