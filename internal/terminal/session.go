// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// Package terminal brackets single-key reads of an interactive terminal.
// A Session captures the line discipline once, switches the device into a
// non-canonical, non-echoing mode around each read and restores the captured
// state before every read returns.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/toeirei/choose/internal/logging"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var (
	// ErrNotATerminal is returned when the input is not an interactive terminal.
	ErrNotATerminal = errors.New("input is not a terminal")
	// ErrDevice wraps failures reading or changing the terminal state.
	ErrDevice = errors.New("terminal device error")
)

// Kind tags the outcome of a single read attempt.
type Kind int

const (
	KindKey Kind = iota
	KindTimeout
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindTimeout:
		return "timeout"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KeyResult is the outcome of one ReadKey call. Key is only meaningful for
// KindKey and Err only for KindError.
type KeyResult struct {
	Kind Kind
	Key  byte
	Err  error
}

// Key returns a KindKey result for c.
func Key(c byte) KeyResult { return KeyResult{Kind: KindKey, Key: c} }

// Timeout returns a KindTimeout result.
func Timeout() KeyResult { return KeyResult{Kind: KindTimeout} }

// Failed returns a KindError result carrying err.
func Failed(err error) KeyResult { return KeyResult{Kind: KindError, Err: err} }

// Session owns the terminal state of one input descriptor. It is not safe
// for concurrent use; only one Session should exist per process.
type Session struct {
	fd       int
	snapshot *unix.Termios
	cleanup  runtime.Cleanup
}

// poll is swapped out by tests.
var poll = unix.Poll

type snapshotRef struct {
	fd    int
	state unix.Termios
}

// New returns a Session for f. The terminal is not touched until Open or
// the first ReadKey.
func New(f *os.File) *Session {
	return &Session{fd: int(f.Fd())}
}

// Open verifies the descriptor is a terminal and captures its current
// configuration. Calling Open on an open session is a no-op.
func (s *Session) Open() error {
	if s.snapshot != nil {
		return nil
	}
	if !term.IsTerminal(s.fd) {
		return ErrNotATerminal
	}
	st, err := unix.IoctlGetTermios(s.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("%w: read attributes: %v", ErrDevice, err)
	}
	s.snapshot = st
	// Restore the tty if the session is dropped without Close.
	s.cleanup = runtime.AddCleanup(s, func(ref snapshotRef) {
		_ = unix.IoctlSetTermios(ref.fd, ioctlWriteTermios, &ref.state)
	}, snapshotRef{fd: s.fd, state: *st})
	logging.Debugf("terminal session opened on fd %d", s.fd)
	return nil
}

// Snapshot returns a copy of the captured configuration.
func (s *Session) Snapshot() (unix.Termios, bool) {
	if s.snapshot == nil {
		return unix.Termios{}, false
	}
	return *s.snapshot, true
}

// ReadKey waits up to timeout for a single key press. A negative timeout
// waits indefinitely. Input typed before the call is discarded, and the
// captured configuration is restored on every return path.
func (s *Session) ReadKey(timeout time.Duration) KeyResult {
	if err := s.Open(); err != nil {
		return Failed(err)
	}

	raw := *s.snapshot
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	s.flush()
	defer s.restore()
	if err := unix.IoctlSetTermios(s.fd, ioctlWriteTermios, &raw); err != nil {
		return Failed(fmt.Errorf("%w: enter raw mode: %v", ErrDevice, err))
	}
	defer s.flush()

	return s.wait(timeout)
}

// Close restores the captured configuration. It is safe to call more than
// once and on a session that was never opened.
func (s *Session) Close() error {
	if s.snapshot == nil {
		return nil
	}
	s.cleanup.Stop()
	err := unix.IoctlSetTermios(s.fd, ioctlWriteTermios, s.snapshot)
	s.snapshot = nil
	if err != nil {
		return fmt.Errorf("%w: restore attributes: %v", ErrDevice, err)
	}
	logging.Debugf("terminal session closed on fd %d", s.fd)
	return nil
}

func (s *Session) wait(timeout time.Duration) KeyResult {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN | unix.POLLPRI}}

	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		ms := -1
		if timeout >= 0 {
			ms = pollMillis(time.Until(deadline))
		}
		n, err := poll(fds, ms)
		if err == unix.EINTR {
			if timeout >= 0 && !time.Now().Before(deadline) {
				return Timeout()
			}
			continue
		}
		if err != nil {
			return Failed(fmt.Errorf("%w: poll: %v", ErrDevice, err))
		}
		if n == 0 {
			return Timeout()
		}
		if fds[0].Revents&(unix.POLLIN|unix.POLLPRI) == 0 {
			return Failed(fmt.Errorf("%w: poll revents %#x", ErrDevice, fds[0].Revents))
		}
		return s.readByte()
	}
}

func (s *Session) readByte() KeyResult {
	var buf [1]byte
	for {
		n, err := unix.Read(s.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Failed(fmt.Errorf("%w: read: %v", ErrDevice, err))
		}
		if n == 0 {
			return Failed(fmt.Errorf("%w: end of input", ErrDevice))
		}
		return Key(buf[0])
	}
}

func (s *Session) restore() {
	if err := unix.IoctlSetTermios(s.fd, ioctlWriteTermios, s.snapshot); err != nil {
		logging.Warnf("could not restore terminal: %v", err)
	}
}

func (s *Session) flush() {
	if err := flushInput(s.fd); err != nil {
		logging.Debugf("flush fd %d: %v", s.fd, err)
	}
}

// pollMillis rounds d up to whole milliseconds so a wait never returns
// before the deadline.
func pollMillis(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
