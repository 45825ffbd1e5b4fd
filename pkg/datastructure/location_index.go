package datastructure

// LocationIndex is the inverse of the graph locations: coordinate -> node id.
// When several nodes share the exact same coordinate only the last one inserted survives.
type LocationIndex map[Coordinate]NodeID

// BuildLocationIndex inserts graph nodes in ascending id order, so on a collision the
// largest id wins.
func BuildLocationIndex(g *Graph) LocationIndex {
	idx := make(LocationIndex, g.NumNodes())
	for _, id := range g.NodeIDs() {
		loc, _ := g.Location(id)
		idx[loc] = id
	}
	return idx
}

func (l LocationIndex) NodeAt(c Coordinate) (NodeID, bool) {
	id, ok := l[c]
	return id, ok
}
