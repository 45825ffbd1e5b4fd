package connectivity

import (
	"lintang/osmroute/pkg/datastructure"

	"golang.org/x/exp/slices"
)

// Components holds the strongly connected components of a graph and its condensation.
// Components are numbered in topological order of the condensation, so an edge between two
// components always goes from a smaller to a larger component id.
type Components struct {
	componentOf map[datastructure.NodeID]int32
	sizes       []int32
	condAdj     [][]int32
}

// KosarajuSCC computes the strongly connected components of g using two iterative DFS passes.
func KosarajuSCC(g *datastructure.Graph) *Components {
	ids := g.NodeIDs()
	n := int32(len(ids))
	index := make(map[datastructure.NodeID]int32, n)
	for i, id := range ids {
		index[id] = int32(i)
	}

	adj := make([][]int32, n)
	radj := make([][]int32, n)
	for i, id := range ids {
		for _, to := range g.Neighbors(id) {
			j := index[to]
			adj[i] = append(adj[i], j)
			radj[j] = append(radj[j], int32(i))
		}
	}

	order := make([]int32, 0, n)
	visited := make([]bool, n)
	for i := int32(0); i < n; i++ {
		if !visited[i] {
			dfs(i, adj, visited, &order)
		}
	}

	slices.Reverse(order)

	// reset visited
	visited = make([]bool, n)
	comp := make([]int32, n)
	sizes := make([]int32, 0)
	component := make([]int32, 0)
	for _, v := range order {
		if visited[v] {
			continue
		}
		component = component[:0]
		dfs(v, radj, visited, &component)
		c := int32(len(sizes))
		for _, u := range component {
			comp[u] = c
		}
		sizes = append(sizes, int32(len(component)))
	}

	// add edges to condensation graph
	condAdj := make([][]int32, len(sizes))
	seen := make(map[[2]int32]struct{})
	for v := int32(0); v < n; v++ {
		for _, to := range adj[v] {
			from, toComp := comp[v], comp[to]
			if from == toComp {
				continue
			}
			if _, ok := seen[[2]int32{from, toComp}]; ok {
				continue
			}
			seen[[2]int32{from, toComp}] = struct{}{}
			condAdj[from] = append(condAdj[from], toComp)
		}
	}

	componentOf := make(map[datastructure.NodeID]int32, n)
	for i, id := range ids {
		componentOf[id] = comp[i]
	}
	return &Components{
		componentOf: componentOf,
		sizes:       sizes,
		condAdj:     condAdj,
	}
}

type dfsFrame struct {
	v    int32
	next int
}

// dfs appends vertices to output in post order.
func dfs(start int32, adj [][]int32, visited []bool, output *[]int32) {
	stack := []dfsFrame{{v: start}}
	visited[start] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(adj[top.v]) {
			to := adj[top.v][top.next]
			top.next++
			if !visited[to] {
				visited[to] = true
				stack = append(stack, dfsFrame{v: to})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}

func (c *Components) Count() int {
	return len(c.sizes)
}

// Component returns the component id of node.
func (c *Components) Component(node datastructure.NodeID) (int32, bool) {
	id, ok := c.componentOf[node]
	return id, ok
}

func (c *Components) Size(component int32) int {
	return int(c.sizes[component])
}

func (c *Components) SameComponent(a, b datastructure.NodeID) bool {
	ca, okA := c.componentOf[a]
	cb, okB := c.componentOf[b]
	return okA && okB && ca == cb
}

// Reachable reports whether a directed path from -> to exists.
func (c *Components) Reachable(from, to datastructure.NodeID) bool {
	src, ok := c.componentOf[from]
	if !ok {
		return false
	}
	dst, ok := c.componentOf[to]
	if !ok {
		return false
	}
	if src == dst {
		return true
	}
	if src > dst {
		return false
	}

	visited := map[int32]struct{}{src: {}}
	queue := []int32{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range c.condAdj[cur] {
			if next == dst {
				return true
			}
			if next > dst {
				continue
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}
