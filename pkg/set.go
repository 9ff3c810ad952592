package pkg

import (
	"sort"

	sets "github.com/deckarep/golang-set"
)

// PidSet is a set of pids. It is not safe for concurrent use.
type PidSet struct {
	internal sets.Set
}

func NewPidSet(pids ...uint32) *PidSet {
	set := &PidSet{internal: sets.NewThreadUnsafeSet()}
	for _, pid := range pids {
		set.Add(pid)
	}
	return set
}

// Add reports whether pid was newly added.
func (set *PidSet) Add(pid uint32) bool {
	return set.internal.Add(pid)
}

func (set *PidSet) Contains(pid uint32) bool {
	return set.internal.Contains(pid)
}

func (set *PidSet) Len() int {
	return set.internal.Cardinality()
}

func (set *PidSet) Sorted() []uint32 {
	pids := make([]uint32, 0, set.Len())
	for item := range set.internal.Iter() {
		pids = append(pids, item.(uint32))
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	return pids
}
