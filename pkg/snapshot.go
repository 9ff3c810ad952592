package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
	log  = logrus.StandardLogger()
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Snapshot is the process table of one point in time, keyed by pid. Pid 0
// never appears as a key.
type Snapshot struct {
	PidProcess map[uint32]*Process `json:"process" yaml:"process"`
	TakenAt    time.Time           `json:"taken_at" yaml:"taken_at"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		PidProcess: map[uint32]*Process{},
		TakenAt:    time.Now(),
	}
}

// TakeSnapshot collects a snapshot from DefaultOpener.
func TakeSnapshot() (*Snapshot, error) {
	return Collect(DefaultOpener)
}

func (s *Snapshot) add(p *Process) {
	if p.Pid == 0 {
		log.WithField("exec", p.Exec).Debugln("drop entry with pid 0")
		return
	}
	if old, ok := s.PidProcess[p.Pid]; ok {
		log.WithFields(logrus.Fields{
			"pid":  p.Pid,
			"old":  old.Exec,
			"exec": p.Exec,
		}).Debugln("duplicate pid in snapshot, keep the later entry")
	}
	s.PidProcess[p.Pid] = &Process{Pid: p.Pid, Exec: p.Exec, Parent: p.Parent}
}

// link rebuilds every Children list from the Parent fields.
func (s *Snapshot) link() {
	for _, p := range s.PidProcess {
		p.Children = nil
	}
	for _, pid := range s.Pids() {
		p := s.PidProcess[pid]
		if !p.HasParent() {
			continue
		}
		if parent, ok := s.PidProcess[p.Parent]; ok {
			parent.Children = append(parent.Children, pid)
		}
	}
}

// Pids returns the snapshot's pids in ascending order.
func (s *Snapshot) Pids() []uint32 {
	pids := make([]uint32, 0, len(s.PidProcess))
	for pid := range s.PidProcess {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	return pids
}

func (s *Snapshot) Processes() []*Process {
	ps := make([]*Process, 0, len(s.PidProcess))
	for _, pid := range s.Pids() {
		ps = append(ps, s.PidProcess[pid])
	}
	return ps
}

func (s *Snapshot) Len() int {
	return len(s.PidProcess)
}

func (s *Snapshot) Dump(format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	}
	return nil, fmt.Errorf("unknown snapshot format %q", format)
}

// DumpFile writes the snapshot to path. An empty path gets a timestamped
// name; the format follows the extension and falls back to format.
func (s *Snapshot) DumpFile(path string, format string) (string, error) {
	if path == "" {
		if format == "" {
			format = FormatJSON
		}
		path = fmt.Sprintf("snapshot-%s.%s", s.TakenAt.Format("2006-01-02-150405"), format)
	}
	if f := formatOf(path); f != "" {
		format = f
	}
	data, err := s.Dump(format)
	if err != nil {
		return "", err
	}
	log.WithField("path", path).Infoln("write snapshot")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadFile reads a snapshot written by DumpFile. Pid 0 entries are dropped
// and children are relinked so the table keeps its invariants.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	loaded := &Snapshot{}
	if formatOf(path) == FormatYAML {
		err = yaml.Unmarshal(data, loaded)
	} else {
		err = json.Unmarshal(data, loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	s := NewSnapshot()
	s.TakenAt = loaded.TakenAt
	for pid, p := range loaded.PidProcess {
		if p == nil {
			continue
		}
		if p.Pid == 0 {
			p.Pid = pid
		}
		s.add(p)
	}
	s.link()
	return s, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return ""
}
