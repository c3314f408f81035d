package series

// Point is one accepted (timestamp, sentiment) observation. Timestamps are
// carried as opaque strings exactly as they arrive on the wire.
type Point struct {
	Timestamp string
	Sentiment float64
}

// Store is an append-only, arrival-ordered collection of points. The consumer
// loop is its only writer and reads happen on the same goroutine, so it
// carries no locking.
type Store struct {
	points []Point
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Append adds a point at the end of the series
func (s *Store) Append(p Point) {
	s.points = append(s.points, p)
}

// Len returns the number of points accumulated so far
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a snapshot of the series in arrival order. The copy keeps
// renderers independent from later appends.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Last returns the most recently appended point
func (s *Store) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}
