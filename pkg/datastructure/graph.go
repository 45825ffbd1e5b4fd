package datastructure

import (
	"golang.org/x/exp/slices"
)

// NodeID is the openstreetmap node id.
type NodeID int64

type GraphNode struct {
	Location  Coordinate
	neighbors map[NodeID]struct{}
	adjacent  []NodeID // ascending, filled by Freeze
}

func newGraphNode() *GraphNode {
	return &GraphNode{
		neighbors: make(map[NodeID]struct{}),
	}
}

func (n *GraphNode) HasNeighbor(id NodeID) bool {
	_, ok := n.neighbors[id]
	return ok
}

func (n *GraphNode) Degree() int {
	return len(n.neighbors)
}

// Graph is the road network adjacency: node id -> {neighbors, location}.
// Only nodes referenced by an accepted way are stored.
// A Graph is mutated by the builder and then frozen; after Freeze it is read only
// and safe for concurrent readers.
type Graph struct {
	nodes  map[NodeID]*GraphNode
	ids    []NodeID // ascending, filled by Freeze
	edges  int
	frozen bool
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*GraphNode),
	}
}

// AddNode inserts id with an empty neighbor set if it is not present yet.
func (g *Graph) AddNode(id NodeID) *GraphNode {
	g.mustNotBeFrozen()
	n, ok := g.nodes[id]
	if !ok {
		n = newGraphNode()
		g.nodes[id] = n
	}
	return n
}

// AddEdge inserts the directed edge from -> to. Both endpoints are created if needed.
func (g *Graph) AddEdge(from, to NodeID) {
	g.mustNotBeFrozen()
	fromNode := g.AddNode(from)
	g.AddNode(to)
	if _, ok := fromNode.neighbors[to]; !ok {
		fromNode.neighbors[to] = struct{}{}
		g.edges++
	}
}

// SetLocation returns false if id is not part of the graph.
func (g *Graph) SetLocation(id NodeID, loc Coordinate) bool {
	g.mustNotBeFrozen()
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.Location = loc
	return true
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) HasEdge(from, to NodeID) bool {
	n, ok := g.nodes[from]
	if !ok {
		return false
	}
	return n.HasNeighbor(to)
}

func (g *Graph) GetNode(id NodeID) (*GraphNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Location(id NodeID) (Coordinate, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Coordinate{}, false
	}
	return n.Location, true
}

// Neighbors returns the out neighbors of id in ascending id order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	if g.frozen {
		return n.adjacent
	}
	return sortedKeys(n.neighbors)
}

// NodeIDs returns every node id in ascending order.
// The returned slice must not be modified.
func (g *Graph) NodeIDs() []NodeID {
	if g.frozen {
		return g.ids
	}
	return sortedKeys(g.nodes)
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return g.edges
}

func (g *Graph) IsFrozen() bool {
	return g.frozen
}

// Freeze fixes the iteration order of nodes and neighbors. Further mutation panics.
func (g *Graph) Freeze() {
	if g.frozen {
		return
	}
	g.ids = sortedKeys(g.nodes)
	for _, n := range g.nodes {
		n.adjacent = sortedKeys(n.neighbors)
	}
	g.frozen = true
}

// ForEachEdge visits every directed edge, sources in ascending id order.
func (g *Graph) ForEachEdge(fn func(from, to NodeID)) {
	for _, from := range g.NodeIDs() {
		for _, to := range g.Neighbors(from) {
			fn(from, to)
		}
	}
}

func (g *Graph) mustNotBeFrozen() {
	if g.frozen {
		panic("datastructure: mutating a frozen graph")
	}
}

func sortedKeys[V any](m map[NodeID]V) []NodeID {
	keys := make([]NodeID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
