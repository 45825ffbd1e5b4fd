package datastructure

// EdgeKey is an ordered (from, to) node pair.
type EdgeKey struct {
	From NodeID
	To   NodeID
}

func NewEdgeKey(from, to NodeID) EdgeKey {
	return EdgeKey{From: from, To: to}
}

// SpeedMap maps a directed edge to its speed limit in mph.
type SpeedMap map[EdgeKey]float64

func NewSpeedMap() SpeedMap {
	return make(SpeedMap)
}

func (s SpeedMap) Set(from, to NodeID, speed float64) {
	s[EdgeKey{From: from, To: to}] = speed
}

func (s SpeedMap) Speed(from, to NodeID) (float64, bool) {
	speed, ok := s[EdgeKey{From: from, To: to}]
	return speed, ok
}
