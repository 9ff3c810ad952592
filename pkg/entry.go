package pkg

import (
	"bytes"
	"unicode/utf8"
)

const maxPath = 260

// processEntry32 mirrors the native PROCESSENTRY32 record (ANSI variant).
//
//	field            size       amd64 offset  386 offset
//	Size             4          0             0
//	Usage            4          4             4
//	ProcessID        4          8             8
//	DefaultHeapID    uintptr    16            12
//	ModuleID         4          24            16
//	Threads          4          28            20
//	ParentProcessID  4          32            24
//	PriClassBase     4 (int32)  36            28
//	Flags            4          40            32
//	ExeFile          260        44            36
//
// The record is 304 bytes on amd64 and 296 on 386. Size must be set to the
// record size before every Process32First/Process32Next call.
type processEntry32 struct {
	Size            uint32
	Usage           uint32
	ProcessID       uint32
	DefaultHeapID   uintptr
	ModuleID        uint32
	Threads         uint32
	ParentProcessID uint32
	PriClassBase    int32
	Flags           uint32
	ExeFile         [maxPath]byte
}

func (e *processEntry32) process() (*Process, error) {
	exec, err := decodeExeFile(e.ExeFile[:])
	if err != nil {
		return nil, err
	}
	return &Process{
		Pid:    e.ProcessID,
		Exec:   exec,
		Parent: e.ParentProcessID,
	}, nil
}

// decodeExeFile trims buf at the first NUL and requires the rest to be UTF-8.
func decodeExeFile(buf []byte) (string, error) {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if !utf8.Valid(buf) {
		return "", &OSResourceError{Op: "decode szExeFile", Err: ErrInvalidEncoding}
	}
	return string(buf), nil
}
