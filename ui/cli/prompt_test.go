// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"testing"

	"github.com/toeirei/choose/internal/choice"
)

func TestPromptRenderer_Render(t *testing.T) {
	p := newPromptRenderer(&bytes.Buffer{})
	cases := []struct {
		opts choice.Options
		want string
	}{
		{choice.Options{Choices: "YN"}, "[Y,N]?"},
		{choice.Options{Choices: "YNC", Message: "Save? "}, "Save? [Y,N,C]?"},
		{choice.Options{Choices: "ab", Message: "Pick: ", HideChoices: true}, "Pick: "},
		{choice.Options{Choices: "ab", HideChoices: true}, ""},
		{choice.Options{Choices: "ync", Default: 'Y'}, "[y,n,c]?"},
	}
	for _, c := range cases {
		if got := p.Render(c.opts); got != c.want {
			t.Fatalf("Render(%+v) = %q, want %q", c.opts, got, c.want)
		}
	}
}

func TestPromptRenderer_Clear(t *testing.T) {
	p := newPromptRenderer(&bytes.Buffer{})
	if got := p.Clear(choice.Options{Choices: "YN"}); got != clearLine {
		t.Fatalf("expected clear sequence, got %q", got)
	}
	if got := p.Clear(choice.Options{Choices: "YN", HideChoices: true, Message: "x"}); got != clearLine {
		t.Fatalf("expected clear sequence with message, got %q", got)
	}
	if got := p.Clear(choice.Options{Choices: "YN", HideChoices: true}); got != "" {
		t.Fatalf("expected nothing to clear, got %q", got)
	}
}
