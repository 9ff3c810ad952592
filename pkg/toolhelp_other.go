//go:build !windows

package pkg

import "errors"

var defaultSource = SourceGopsutil

var errToolhelpUnsupported = errors.New("toolhelp snapshots are only available on windows")

// OpenToolhelp always fails outside Windows.
func OpenToolhelp() (Source, error) {
	return nil, &OSResourceError{Op: "CreateToolhelp32Snapshot", Err: errToolhelpUnsupported}
}
