// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

package choice

import (
	"errors"
	"io"
	"time"

	"github.com/toeirei/choose/internal/logging"
	"github.com/toeirei/choose/internal/terminal"
)

// ErrorIndex is the resolved index, and exit status, of a hard failure.
const ErrorIndex = 255

// ErrDefaultUnmatched is returned when the timeout expires and the default
// does not match any choice. Validate rules this out.
var ErrDefaultUnmatched = errors.New("default does not match any choice")

// KeyReader delivers one key press per call. A negative timeout blocks
// until a key arrives or the read fails.
type KeyReader interface {
	ReadKey(timeout time.Duration) terminal.KeyResult
}

// Prompt turns key presses into a resolved choice.
type Prompt struct {
	opts   Options
	reader KeyReader
	alert  io.Writer
	now    func() time.Time
}

// Option configures a Prompt.
type Option func(*Prompt)

// WithAlert writes a bell character to w for every rejected printable key.
func WithAlert(w io.Writer) Option {
	return func(p *Prompt) { p.alert = w }
}

// WithClock replaces time.Now as the source of elapsed time.
func WithClock(now func() time.Time) Option {
	return func(p *Prompt) { p.now = now }
}

// New returns a Prompt reading keys from r. opts must already be valid.
func New(opts Options, r KeyReader, options ...Option) *Prompt {
	p := &Prompt{opts: opts, reader: r, now: time.Now}
	for _, o := range options {
		o(p)
	}
	return p
}

// Resolve waits until a key matches a choice and returns its 1-based index.
// On a read failure it returns ErrorIndex and the error. With a timeout the
// deadline is fixed at the first poll; rejected keys do not extend it.
func (p *Prompt) Resolve() (int, error) {
	if !p.opts.HasTimeout() {
		return p.resolveUntimed()
	}
	return p.resolveTimed()
}

func (p *Prompt) resolveUntimed() (int, error) {
	for {
		res := p.reader.ReadKey(NoTimeout)
		switch res.Kind {
		case terminal.KindError:
			return ErrorIndex, res.Err
		case terminal.KindTimeout:
			continue
		}
		if idx, ok := p.accept(res.Key); ok {
			return idx, nil
		}
	}
}

func (p *Prompt) resolveTimed() (int, error) {
	start := p.now()
	for {
		remaining := p.opts.Timeout - p.now().Sub(start)
		if remaining <= 0 {
			return p.resolveDefault()
		}
		res := p.reader.ReadKey(remaining)
		switch res.Kind {
		case terminal.KindError:
			return ErrorIndex, res.Err
		case terminal.KindTimeout:
			return p.resolveDefault()
		}
		if idx, ok := p.accept(res.Key); ok {
			return idx, nil
		}
	}
}

func (p *Prompt) resolveDefault() (int, error) {
	logging.Debugf("timeout after %v, taking default %q", p.opts.Timeout, p.opts.Default)
	if idx := p.opts.Index(p.opts.Default); idx >= 0 {
		return idx + 1, nil
	}
	return ErrorIndex, ErrDefaultUnmatched
}

// accept reports whether c selects a choice. Printable keys that match
// nothing sound the alert; control bytes are ignored.
func (p *Prompt) accept(c byte) (int, bool) {
	if !printable(c) {
		logging.Debugf("ignoring control byte %#x", c)
		return 0, false
	}
	idx := p.opts.Index(c)
	if idx < 0 {
		logging.Debugf("rejected key %q", c)
		p.ring()
		return 0, false
	}
	return idx + 1, true
}

func (p *Prompt) ring() {
	if p.alert == nil {
		return
	}
	// Best effort; a missing bell never blocks the prompt.
	_, _ = p.alert.Write([]byte{'\a'})
}

func printable(c byte) bool { return c >= 0x20 && c <= 0x7e }
