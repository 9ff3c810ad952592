package pkg

// Process is one entry of a snapshot. Parent is 0 when the process has none.
type Process struct {
	Pid      uint32   `json:"pid" yaml:"pid"`
	Exec     string   `json:"exec" yaml:"exec"`
	Parent   uint32   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []uint32 `json:"children,omitempty" yaml:"children,omitempty"`
}

func (p *Process) HasParent() bool {
	return p.Parent != 0 && p.Parent != p.Pid
}
