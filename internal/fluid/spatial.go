package fluid

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	hashX uint32 = 15823
	hashY uint32 = 9737333
)

// Entry maps a particle to the key of the cell it occupies.
type Entry struct {
	Index int
	Key   uint32
}

// Cell is a grid coordinate; cells are SmoothingRadius wide.
type Cell struct {
	X, Y int32
}

var neighborOffsets = [9]Cell{
	{-1, 1}, {0, 1}, {1, 1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

func CellOf(p vmath.Vec2f, h float32) Cell {
	return Cell{X: int32(math32.Floor(p.X / h)), Y: int32(math32.Floor(p.Y / h))}
}

// zigzag maps signed cell coordinates onto uint32 without collisions:
// 0, -1, 1, -2, 2 become 0, 1, 2, 3, 4.
func zigzag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// HashCell mixes a cell coordinate into a 32-bit hash. Overflow wraps.
func HashCell(c Cell) uint32 {
	return zigzag(c.X)*hashX + zigzag(c.Y)*hashY
}

// KeyFromHash folds a hash into a table of n slots.
func KeyFromHash(hash uint32, n int) uint32 {
	return hash % uint32(n)
}

// UpdateSpatialLookup rebuilds the index from the predicted positions.
func (p *Particles) UpdateSpatialLookup() {
	n := len(p.PredictedPositions)
	if cap(p.lookup) < n {
		p.lookup = make([]Entry, n)
		p.cellStart = make([]int, n)
	}
	p.lookup = p.lookup[:n]
	p.cellStart = p.cellStart[:n]

	for i, pos := range p.PredictedPositions {
		key := KeyFromHash(HashCell(CellOf(pos, p.SmoothingRadius)), n)
		p.lookup[i] = Entry{Index: i, Key: key}
		p.cellStart[i] = -1
	}

	sort.Slice(p.lookup, func(a, b int) bool {
		if p.lookup[a].Key != p.lookup[b].Key {
			return p.lookup[a].Key < p.lookup[b].Key
		}
		return p.lookup[a].Index < p.lookup[b].Index
	})

	for i, e := range p.lookup {
		if i == 0 || e.Key != p.lookup[i-1].Key {
			p.cellStart[e.Key] = i
		}
	}
}

// ForEachNeighbor calls fn for every particle whose predicted position lies
// within SmoothingRadius of point, including a particle sitting on point
// itself. The lookup must be current.
func (p *Particles) ForEachNeighbor(point vmath.Vec2f, fn func(j int, dist float32)) {
	n := len(p.lookup)
	if n == 0 {
		return
	}
	h := p.SmoothingRadius
	sqrRadius := h * h
	center := CellOf(point, h)

	for _, off := range neighborOffsets {
		cell := Cell{X: center.X + off.X, Y: center.Y + off.Y}
		key := KeyFromHash(HashCell(cell), n)
		for k := p.cellStart[key]; k >= 0 && k < n && p.lookup[k].Key == key; k++ {
			j := p.lookup[k].Index
			pos := p.PredictedPositions[j]
			if CellOf(pos, h) != cell {
				continue
			}
			if d2 := pos.DistSq(point); d2 <= sqrRadius {
				fn(j, math32.Sqrt(d2))
			}
		}
	}
}

// Neighbors appends to dst the indices of all particles within
// SmoothingRadius of particle i, i included.
func (p *Particles) Neighbors(i int, dst []int) []int {
	p.ForEachNeighbor(p.PredictedPositions[i], func(j int, _ float32) {
		dst = append(dst, j)
	})
	return dst
}
