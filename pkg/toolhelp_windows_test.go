//go:build windows

package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolhelpSnapshotSeesSelf(t *testing.T) {
	snapshot, err := Collect(OpenToolhelp)
	require.NoError(t, err)

	self, ok := snapshot.PidProcess[SelfPid()]
	require.True(t, ok)
	assert.Equal(t, uint32(os.Getppid()), self.Parent)

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.True(t, strings.EqualFold(filepath.Base(exe), self.Exec), "%s != %s", exe, self.Exec)

	_, ok = snapshot.PidProcess[0]
	assert.False(t, ok)
}

func TestToolhelpCloseTwice(t *testing.T) {
	src, err := OpenToolhelp()
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	_, ok, err := src.Next()
	assert.False(t, ok)
	assert.Error(t, err)
}
