// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// Package choice resolves a stream of key presses into the index of one
// entry of an ordered choice set.
package choice

import (
	"errors"
	"fmt"
	"time"
)

// NoTimeout disables the timeout; the prompt waits until a valid key arrives.
const NoTimeout time.Duration = -1

var (
	ErrNoChoices           = errors.New("no choices given")
	ErrInvalidChoice       = errors.New("choices must be in [0-9A-Za-z]")
	ErrDuplicateChoice     = errors.New("choice listed more than once")
	ErrInvalidDefault      = errors.New("default must be in [0-9A-Za-z]")
	ErrDefaultNotInChoices = errors.New("default is not one of the choices")
	ErrTimeoutNeedsDefault = errors.New("timeout needs a default")
)

// ValidationError reports why a set of Options was rejected. Value holds
// the offending character, if any.
type ValidationError struct {
	Err     error
	Choices string
	Value   string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Options is the validated input of a Prompt.
type Options struct {
	// Choices lists the accepted characters in order; the first is index 1.
	Choices string
	// Default is the choice taken when the timeout expires. Zero means none.
	Default byte
	// Timeout is the total time to wait before taking Default. Negative
	// values wait forever.
	Timeout       time.Duration
	CaseSensitive bool
	HideChoices   bool
	Message       string
}

func (o Options) HasDefault() bool { return o.Default != 0 }

func (o Options) HasTimeout() bool { return o.Timeout >= 0 }

// Validate checks the options before the terminal is touched.
func (o Options) Validate() error {
	if o.Choices == "" {
		return &ValidationError{Err: ErrNoChoices}
	}
	for i := 0; i < len(o.Choices); i++ {
		c := o.Choices[i]
		if !isAlnum(c) {
			return &ValidationError{Err: ErrInvalidChoice, Choices: o.Choices, Value: string(c)}
		}
		if first := o.Index(c); first != i {
			return &ValidationError{Err: ErrDuplicateChoice, Choices: o.Choices, Value: string(c)}
		}
	}
	if o.HasDefault() {
		if !isAlnum(o.Default) {
			return &ValidationError{Err: ErrInvalidDefault, Choices: o.Choices, Value: string(o.Default)}
		}
		if o.Index(o.Default) < 0 {
			return &ValidationError{Err: ErrDefaultNotInChoices, Choices: o.Choices, Value: string(o.Default)}
		}
	}
	if o.HasTimeout() && !o.HasDefault() {
		return &ValidationError{Err: ErrTimeoutNeedsDefault, Choices: o.Choices}
	}
	return nil
}

// Index returns the 0-based position of c in Choices, or -1. Without
// CaseSensitive the comparison is made on upper-cased forms. The first
// matching position wins.
func (o Options) Index(c byte) int {
	if !isAlnum(c) {
		return -1
	}
	for i := 0; i < len(o.Choices); i++ {
		cc := o.Choices[i]
		if cc == c || (!o.CaseSensitive && upper(cc) == upper(c)) {
			return i
		}
	}
	return -1
}

func isAlnum(c byte) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
