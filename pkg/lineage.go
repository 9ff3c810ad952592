package pkg

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// maxAncestorDepth bounds Ancestors when pid reuse produces very long or
// looping parent chains.
const maxAncestorDepth = 32

// Ancestors returns pid followed by each ancestor still present in the
// snapshot, nearest first. The walk stops at pid 0, at a parent that is not in
// the table, at a repeated pid, or after maxAncestorDepth hops.
func (s *Snapshot) Ancestors(pid uint32) ([]*Process, error) {
	p, err := s.lookup(pid, pid, HopProcess)
	if err != nil {
		return nil, err
	}
	chain := []*Process{p}
	seen := NewPidSet(pid)
	for len(chain) <= maxAncestorDepth && p.HasParent() {
		parent, ok := s.PidProcess[p.Parent]
		if !ok {
			break
		}
		if !seen.Add(parent.Pid) {
			log.WithField("pid", parent.Pid).Debugln("parent cycle in snapshot")
			break
		}
		chain = append(chain, parent)
		p = parent
	}
	return chain, nil
}

func (s *Snapshot) Children(pid uint32) ([]*Process, error) {
	p, err := s.lookup(pid, pid, HopProcess)
	if err != nil {
		return nil, err
	}
	children := make([]*Process, 0, len(p.Children))
	for _, c := range p.Children {
		if child, ok := s.PidProcess[c]; ok {
			children = append(children, child)
		}
	}
	return children, nil
}

// Graph builds a directed parent -> child graph with one node per pid.
func (s *Snapshot) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for _, pid := range s.Pids() {
		if g.Node(int64(pid)) == nil {
			g.AddNode(simple.Node(pid))
		}
	}
	for _, p := range s.PidProcess {
		if !p.HasParent() {
			continue
		}
		if _, ok := s.PidProcess[p.Parent]; !ok {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(p.Parent), simple.Node(p.Pid)))
	}
	return g
}

// Descendants returns every process below pid, ordered by pid.
func (s *Snapshot) Descendants(pid uint32) ([]*Process, error) {
	if _, err := s.lookup(pid, pid, HopProcess); err != nil {
		return nil, err
	}
	g := s.Graph()
	found := NewPidSet()
	bfs := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			if id := uint32(n.ID()); id != pid {
				found.Add(id)
			}
		},
	}
	bfs.Walk(g, simple.Node(pid), nil)

	res := make([]*Process, 0, found.Len())
	for _, id := range found.Sorted() {
		res = append(res, s.PidProcess[id])
	}
	return res, nil
}
