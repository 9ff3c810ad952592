package pkg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// RenderLineage writes chain as a dot graph, parents pointing to children.
// chain is ordered nearest first, as returned by Ancestors; the queried
// process is highlighted.
func RenderLineage(chain []*Process, w io.Writer) error {
	if len(chain) == 0 {
		return errors.New("empty lineage")
	}
	g := graphviz.New()
	defer g.Close()
	graph, err := g.Graph()
	if err != nil {
		return err
	}
	defer graph.Close()

	nodes := make([]*cgraph.Node, 0, len(chain))
	for _, p := range chain {
		n, err := graph.CreateNode("n" + strconv.FormatUint(uint64(p.Pid), 10))
		if err != nil {
			return fmt.Errorf("create node %d: %w", p.Pid, err)
		}
		n.SetLabel(fmt.Sprintf("%s (%d)", p.Exec, p.Pid))
		nodes = append(nodes, n)
	}
	nodes[0].SetColor("red")

	for i := 1; i < len(nodes); i++ {
		if _, err := graph.CreateEdge("", nodes[i], nodes[i-1]); err != nil {
			return fmt.Errorf("create edge %d -> %d: %w", chain[i].Pid, chain[i-1].Pid, err)
		}
	}

	var buf bytes.Buffer
	if err := g.Render(graph, graphviz.XDOT, &buf); err != nil {
		return fmt.Errorf("render lineage: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
