package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pidsOf(ps []*Process) []uint32 {
	pids := make([]uint32, 0, len(ps))
	for _, p := range ps {
		pids = append(pids, p.Pid)
	}
	return pids
}

func TestAncestors(t *testing.T) {
	snapshot := loadFixture(t)

	chain, err := snapshot.Ancestors(2200)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2200, 1509, 1201, 4}, pidsOf(chain))

	_, err = snapshot.Ancestors(77)
	requireUnknown(t, err, 77, HopProcess)
}

func TestAncestorsStopsAtMissingParent(t *testing.T) {
	snapshot, err := Collect(newFakeSource(
		&Process{Pid: 9, Exec: "build", Parent: 5},
	).opener())
	require.NoError(t, err)

	chain, err := snapshot.Ancestors(9)
	require.NoError(t, err)
	assert.Equal(t, []uint32{9}, pidsOf(chain))
}

func TestAncestorsBreaksCycles(t *testing.T) {
	snapshot, err := Collect(newFakeSource(
		&Process{Pid: 2, Exec: "a", Parent: 3},
		&Process{Pid: 3, Exec: "b", Parent: 4},
		&Process{Pid: 4, Exec: "c", Parent: 2},
		&Process{Pid: 6, Exec: "self", Parent: 6},
	).opener())
	require.NoError(t, err)

	chain, err := snapshot.Ancestors(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3, 4}, pidsOf(chain))

	chain, err = snapshot.Ancestors(6)
	require.NoError(t, err)
	assert.Equal(t, []uint32{6}, pidsOf(chain))
}

func TestAncestorsBounded(t *testing.T) {
	procs := make([]*Process, 0, 100)
	for pid := uint32(1); pid <= 100; pid++ {
		procs = append(procs, &Process{Pid: pid, Exec: "p", Parent: pid - 1})
	}
	snapshot, err := Collect(newFakeSource(procs...).opener())
	require.NoError(t, err)

	chain, err := snapshot.Ancestors(100)
	require.NoError(t, err)
	assert.Len(t, chain, maxAncestorDepth+1)
}

func TestChildrenAndDescendants(t *testing.T) {
	snapshot := loadFixture(t)

	children, err := snapshot.Children(1509)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2200, 2300}, pidsOf(children))

	descendants, err := snapshot.Descendants(4)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1201, 1509, 2200, 2300}, pidsOf(descendants))

	descendants, err = snapshot.Descendants(2200)
	require.NoError(t, err)
	assert.Empty(t, descendants)

	_, err = snapshot.Descendants(0)
	requireUnknown(t, err, 0, HopProcess)
}

func TestGraphSkipsSelfParent(t *testing.T) {
	snapshot, err := Collect(newFakeSource(
		&Process{Pid: 6, Exec: "self", Parent: 6},
		&Process{Pid: 7, Exec: "child", Parent: 6},
	).opener())
	require.NoError(t, err)

	g := snapshot.Graph()
	assert.Equal(t, 2, g.Nodes().Len())
	assert.True(t, g.HasEdgeFromTo(6, 7))
	assert.False(t, g.HasEdgeFromTo(6, 6))
}

func TestPidSet(t *testing.T) {
	set := NewPidSet(3, 1)
	assert.True(t, set.Add(2))
	assert.False(t, set.Add(3))
	assert.True(t, set.Contains(1))
	assert.False(t, set.Contains(9))
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []uint32{1, 2, 3}, set.Sorted())
}
