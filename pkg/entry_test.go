package pkg

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEntry32Layout(t *testing.T) {
	var e processEntry32
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout offsets below are for 64-bit targets")
	}
	assert.Equal(t, uintptr(304), unsafe.Sizeof(e))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(e.Size))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(e.Usage))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(e.ProcessID))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(e.DefaultHeapID))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(e.ModuleID))
	assert.Equal(t, uintptr(28), unsafe.Offsetof(e.Threads))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(e.ParentProcessID))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(e.PriClassBase))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(e.Flags))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(e.ExeFile))
}

func TestDecodeExeFile(t *testing.T) {
	var buf [maxPath]byte
	copy(buf[:], "python.exe\x00garbage")
	name, err := decodeExeFile(buf[:])
	require.NoError(t, err)
	assert.Equal(t, "python.exe", name)

	full := make([]byte, maxPath)
	for i := range full {
		full[i] = 'a'
	}
	name, err = decodeExeFile(full)
	require.NoError(t, err)
	assert.Len(t, name, maxPath)

	name, err = decodeExeFile([]byte("caf\xc3\xa9.exe\x00"))
	require.NoError(t, err)
	assert.Equal(t, "café.exe", name)
}

func TestDecodeExeFileInvalidUTF8(t *testing.T) {
	_, err := decodeExeFile([]byte("caf\xe9.exe\x00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))

	var osErr *OSResourceError
	require.True(t, errors.As(err, &osErr))
	assert.Equal(t, "decode szExeFile", osErr.Op)
}

func TestProcessEntry32ToProcess(t *testing.T) {
	e := processEntry32{ProcessID: 1509, ParentProcessID: 1201}
	copy(e.ExeFile[:], "python.exe")

	p, err := e.process()
	require.NoError(t, err)
	assert.Equal(t, &Process{Pid: 1509, Exec: "python.exe", Parent: 1201}, p)
}
