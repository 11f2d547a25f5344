package engine

import (
	"math"

	"github.com/kamstrup/intmap"
)

// spatialIndex buckets block indices by center into square cells so a radius
// query only visits nearby blocks. It indexes a snapshot of a slice and must
// be rebuilt after the slice changes.
type spatialIndex struct {
	cell    float64
	buckets *intmap.Map[int64, []int]
}

func newSpatialIndex(cell float64) *spatialIndex {
	return &spatialIndex{
		cell:    cell,
		buckets: intmap.New[int64, []int](64),
	}
}

func cellKey(cx, cy int32) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

func (s *spatialIndex) cellOf(x, y float64) (int32, int32) {
	return int32(math.Floor(x / s.cell)), int32(math.Floor(y / s.cell))
}

// rebuild re-indexes blocks from scratch.
func (s *spatialIndex) rebuild(blocks []Block) {
	s.buckets.Clear()
	for i, b := range blocks {
		key := cellKey(s.cellOf(b.X, b.Y))
		bucket, _ := s.buckets.Get(key)
		s.buckets.Put(key, append(bucket, i))
	}
}

// near calls fn with the index of every block whose cell overlaps the square
// of half-width radius around (x, y). Callers still apply the exact test.
func (s *spatialIndex) near(x, y, radius float64, fn func(i int)) {
	minX, minY := s.cellOf(x-radius, y-radius)
	maxX, maxY := s.cellOf(x+radius, y+radius)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			bucket, ok := s.buckets.Get(cellKey(cx, cy))
			if !ok {
				continue
			}
			for _, i := range bucket {
				fn(i)
			}
		}
	}
}

// len returns the number of occupied cells.
func (s *spatialIndex) len() int {
	return s.buckets.Len()
}
