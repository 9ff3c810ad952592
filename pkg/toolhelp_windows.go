//go:build windows

package pkg

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

// The ANSI entry points are used so the name buffer stays a 260-byte array.
var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procProcess32First = modkernel32.NewProc("Process32First")
	procProcess32Next  = modkernel32.NewProc("Process32Next")
)

var defaultSource = SourceNative

type toolhelpSource struct {
	handle windows.Handle
	entry  processEntry32
}

// OpenToolhelp takes a system-wide process snapshot with
// CreateToolhelp32Snapshot.
func OpenToolhelp() (Source, error) {
	h, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, newOSResourceError("CreateToolhelp32Snapshot", err)
	}
	log.WithField("handle", uintptr(h)).Debugln("process snapshot opened")
	return &toolhelpSource{handle: h}, nil
}

func (s *toolhelpSource) First() (*Process, bool, error) {
	return s.call(procProcess32First)
}

func (s *toolhelpSource) Next() (*Process, bool, error) {
	return s.call(procProcess32Next)
}

func (s *toolhelpSource) call(proc *windows.LazyProc) (*Process, bool, error) {
	if s.handle == 0 {
		return nil, false, newOSResourceError(proc.Name, windows.ERROR_INVALID_HANDLE)
	}
	s.entry.Size = uint32(unsafe.Sizeof(s.entry))
	ret, _, err := proc.Call(uintptr(s.handle), uintptr(unsafe.Pointer(&s.entry)))
	if ret == 0 {
		if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
			return nil, false, nil
		}
		return nil, false, newOSResourceError(proc.Name, err)
	}
	p, err := s.entry.process()
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *toolhelpSource) Close() error {
	if s.handle == 0 {
		return nil
	}
	h := s.handle
	s.handle = 0
	if err := windows.CloseHandle(h); err != nil {
		return newOSResourceError("CloseHandle", err)
	}
	log.WithField("handle", uintptr(h)).Debugln("process snapshot closed")
	return nil
}
