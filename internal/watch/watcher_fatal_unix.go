// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports inotify resource exhaustion, after which the
// watcher cannot recover: ENOSPC (max_user_watches reached), EMFILE and ENFILE
// (descriptor limits).
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
