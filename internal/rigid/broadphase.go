package rigid

// Pair holds the indices of two bodies whose AABBs overlap, with A < B.
type Pair struct {
	A, B int
}

// BroadPhase returns every unordered pair of bodies whose AABBs intersect,
// skipping pairs where both bodies are static.
func BroadPhase(bodies []Body) []Pair {
	var pairs []Pair
	for i := 0; i < len(bodies)-1; i++ {
		a := &bodies[i]
		aabbA := a.AABB()
		for j := i + 1; j < len(bodies); j++ {
			b := &bodies[j]
			if a.static && b.static {
				continue
			}
			if !IntersectAABBs(aabbA, b.AABB()) {
				continue
			}
			pairs = append(pairs, Pair{A: i, B: j})
		}
	}
	return pairs
}
