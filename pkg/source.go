package pkg

import (
	"fmt"
	"sort"
)

const (
	SourceNative   = "native"
	SourceGopsutil = "gopsutil"
)

// Source is a cursor over one point-in-time process snapshot.
//
// First and Next return (entry, true, nil) while entries remain,
// (nil, false, nil) once the snapshot is exhausted and (nil, false, err) on
// failure. Close releases whatever the source holds and must be safe to call
// more than once.
type Source interface {
	First() (*Process, bool, error)
	Next() (*Process, bool, error)
	Close() error
}

// Opener acquires a fresh Source.
type Opener func() (Source, error)

// DefaultOpener opens the platform's preferred source.
var DefaultOpener Opener = OpenerFor(defaultSource)

// OpenerFor maps a source name to its Opener. Unknown names open nothing and
// fail on first use.
func OpenerFor(kind string) Opener {
	switch kind {
	case SourceNative:
		return OpenToolhelp
	case SourceGopsutil:
		return OpenGopsutil
	}
	return func() (Source, error) {
		return nil, fmt.Errorf("unknown process source %q", kind)
	}
}

// Collect opens a source, drains it into a new Snapshot and releases it. The
// source is closed exactly once, whether or not draining succeeds.
func Collect(open Opener) (snapshot *Snapshot, err error) {
	src, err := open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			snapshot, err = nil, cerr
		}
	}()

	s := NewSnapshot()
	p, ok, err := src.First()
	for ; ok && err == nil; p, ok, err = src.Next() {
		s.add(p)
	}
	if err != nil {
		return nil, err
	}
	s.link()
	log.WithField("processes", len(s.PidProcess)).Debugln("snapshot collected")
	return s, nil
}

// sliceSource replays a fixed list of entries.
type sliceSource struct {
	procs []*Process
	pos   int
}

func (s *sliceSource) First() (*Process, bool, error) {
	s.pos = 0
	return s.Next()
}

func (s *sliceSource) Next() (*Process, bool, error) {
	if s.pos >= len(s.procs) {
		return nil, false, nil
	}
	p := s.procs[s.pos]
	s.pos++
	return p, true, nil
}

func (s *sliceSource) Close() error { return nil }

// Opener replays the snapshot as a Source, so a dumped table can be resolved
// the same way as a live one.
func (s *Snapshot) Opener() Opener {
	return func() (Source, error) {
		procs := make([]*Process, 0, len(s.PidProcess))
		for _, p := range s.PidProcess {
			procs = append(procs, &Process{Pid: p.Pid, Exec: p.Exec, Parent: p.Parent})
		}
		sort.Slice(procs, func(i, j int) bool { return procs[i].Pid < procs[j].Pid })
		return &sliceSource{procs: procs}, nil
	}
}
