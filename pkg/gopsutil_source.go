package pkg

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// gopsutilSource lists pids once at open time and reads each entry lazily.
// Processes that exit before they are read are skipped.
type gopsutilSource struct {
	ctx  context.Context
	pids []int32
	pos  int
}

// OpenGopsutil snapshots the pid list through gopsutil. It works on every
// platform gopsutil supports and is the default outside Windows.
func OpenGopsutil() (Source, error) {
	ctx := context.Background()
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, newOSResourceError("list pids", err)
	}
	log.WithField("pids", len(pids)).Debugln("gopsutil snapshot opened")
	return &gopsutilSource{ctx: ctx, pids: pids}, nil
}

func (s *gopsutilSource) First() (*Process, bool, error) {
	s.pos = 0
	return s.Next()
}

func (s *gopsutilSource) Next() (*Process, bool, error) {
	for s.pos < len(s.pids) {
		pid := s.pids[s.pos]
		s.pos++
		p, err := s.read(pid)
		if errors.Is(err, process.ErrorProcessNotRunning) {
			log.WithField("pid", pid).Debugln("process exited before it was read")
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return p, true, nil
	}
	return nil, false, nil
}

func (s *gopsutilSource) read(pid int32) (*Process, error) {
	p, err := process.NewProcessWithContext(s.ctx, pid)
	if err != nil {
		return nil, err
	}
	name, err := p.NameWithContext(s.ctx)
	if err != nil {
		return nil, s.wrap("read name", pid, err)
	}
	ppid, err := p.PpidWithContext(s.ctx)
	if err != nil {
		return nil, s.wrap("read parent", pid, err)
	}
	if ppid < 0 {
		ppid = 0
	}
	return &Process{Pid: uint32(pid), Exec: name, Parent: uint32(ppid)}, nil
}

func (s *gopsutilSource) wrap(op string, pid int32, err error) error {
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return err
	}
	if exists, perr := process.PidExistsWithContext(s.ctx, pid); perr == nil && !exists {
		return process.ErrorProcessNotRunning
	}
	log.WithFields(logrus.Fields{"pid": pid, "op": op}).WithError(err).Debugln("gopsutil read failed")
	return newOSResourceError(op, err)
}

func (s *gopsutilSource) Close() error {
	s.pids = nil
	return nil
}
