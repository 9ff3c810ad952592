package pkg

import (
	"os"

	"github.com/sirupsen/logrus"
)

// lookup finds pid in the table. Pid 0 is rejected by name instead of
// falling through to a map miss.
func (s *Snapshot) lookup(of, pid uint32, hop Hop) (*Process, error) {
	if pid == 0 {
		reason := ErrNoParent
		if hop == HopProcess {
			reason = ErrZeroPid
		}
		return nil, &UnknownProcessError{Of: of, Pid: pid, Hop: hop, Err: reason}
	}
	p, ok := s.PidProcess[pid]
	if !ok {
		return nil, &UnknownProcessError{Of: of, Pid: pid, Hop: hop}
	}
	return p, nil
}

// Ancestor follows depth parent links from pid. Depth 0 returns the process
// itself. Every hop must land on an entry of the snapshot.
func (s *Snapshot) Ancestor(pid uint32, depth int) (*Process, error) {
	if depth < 0 {
		return nil, ErrInvalidDepth
	}
	p, err := s.lookup(pid, pid, HopProcess)
	if err != nil {
		return nil, err
	}
	for hop := 1; hop <= depth; hop++ {
		p, err = s.lookup(pid, p.Parent, Hop(hop))
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Grandparent returns the executable of the process two parent links above pid.
func (s *Snapshot) Grandparent(pid uint32) (string, error) {
	p, err := s.Ancestor(pid, int(HopGrandparent))
	if err != nil {
		return "", err
	}
	return p.Exec, nil
}

// Resolver answers ancestry questions against a fresh snapshot per call.
type Resolver struct {
	open Opener
}

func NewResolver(open Opener) *Resolver {
	if open == nil {
		open = DefaultOpener
	}
	return &Resolver{open: open}
}

func (r *Resolver) Snapshot() (*Snapshot, error) {
	return Collect(r.open)
}

func (r *Resolver) Ancestor(pid uint32, depth int) (*Process, error) {
	s, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	p, err := s.Ancestor(pid, depth)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"pid":      pid,
		"depth":    depth,
		"ancestor": p.Pid,
		"exec":     p.Exec,
	}).Debugln("ancestor resolved")
	return p, nil
}

func (r *Resolver) Grandparent(pid uint32) (string, error) {
	p, err := r.Ancestor(pid, int(HopGrandparent))
	if err != nil {
		return "", err
	}
	return p.Exec, nil
}

// GetAllProcesses returns a fresh process table from the default source.
func GetAllProcesses() (*Snapshot, error) {
	return TakeSnapshot()
}

// GetGrandparentProcess returns the grandparent executable of the calling
// process.
func GetGrandparentProcess() (string, error) {
	return GetGrandparentProcessOf(SelfPid())
}

// GetGrandparentProcessOf returns the grandparent executable of pid.
func GetGrandparentProcessOf(pid uint32) (string, error) {
	return NewResolver(DefaultOpener).Grandparent(pid)
}

func SelfPid() uint32 {
	return uint32(os.Getpid())
}
