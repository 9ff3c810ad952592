package pkg

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrUnknownProcess matches every *UnknownProcessError via errors.Is.
	ErrUnknownProcess = errors.New("unknown process")

	// ErrNoParent is the reason attached when a walk reaches a parent pid of 0.
	ErrNoParent = errors.New("process has no parent")

	// ErrZeroPid is the reason attached when pid 0 itself is queried.
	ErrZeroPid = errors.New("pid 0 is not a process")

	// ErrInvalidEncoding is returned when a native executable name is not valid UTF-8.
	ErrInvalidEncoding = errors.New("executable name is not valid utf-8")

	ErrInvalidDepth = errors.New("ancestor depth must not be negative")
)

// OSResourceError reports a failed native call. Code carries the native error
// code when one is available, 0 otherwise.
type OSResourceError struct {
	Op   string
	Code uint32
	Err  error
}

func newOSResourceError(op string, err error) *OSResourceError {
	e := &OSResourceError{Op: op, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Code = uint32(errno)
	}
	return e
}

func (e *OSResourceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s failed: %v (code %d)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OSResourceError) Unwrap() error { return e.Err }

// Hop counts parent links from the queried process.
type Hop int

const (
	HopProcess Hop = iota
	HopParent
	HopGrandparent
)

func (h Hop) String() string {
	switch h {
	case HopProcess:
		return "process"
	case HopParent:
		return "parent"
	case HopGrandparent:
		return "grandparent"
	}
	return fmt.Sprintf("ancestor(%d)", int(h))
}

// UnknownProcessError reports a pid that is missing from the snapshot. Of is
// the pid the walk started from, Pid the one that could not be found.
type UnknownProcessError struct {
	Of  uint32
	Pid uint32
	Hop Hop
	Err error
}

func (e *UnknownProcessError) Error() string {
	msg := fmt.Sprintf("unknown process: pid %d", e.Pid)
	if e.Hop != HopProcess {
		msg = fmt.Sprintf("unknown %s of pid %d: pid %d", e.Hop, e.Of, e.Pid)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnknownProcessError) Is(target error) bool { return target == ErrUnknownProcess }

func (e *UnknownProcessError) Unwrap() error { return e.Err }
