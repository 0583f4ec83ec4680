// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/toeirei/choose/internal/logging"
	"golang.org/x/sys/unix"
)

// exit is swapped out by tests.
var exit = os.Exit

// InstallSignalHandler restores the terminal of s and exits with code when
// the process receives SIGINT, SIGTERM or SIGHUP. Raw reads keep ISIG set, so
// Ctrl-C arrives as a signal while the device is in non-canonical mode and
// the deferred restore in ReadKey never runs. The returned function removes
// the handler.
func InstallSignalHandler(s *Session, code int) (stop func()) {
	state, opened := s.Snapshot()
	fd := s.fd

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			if opened {
				_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, &state)
			}
			logging.Debugf("received %v, terminal restored", sig)
			exit(code)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
