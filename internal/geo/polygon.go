// Package geo contains pure geographic computation helpers.
package geo

import (
	"errors"

	"zonefare/internal/types"
)

// coordinate comparisons tolerate float noise from JSON round-trips
const eps = 1e-9

var (
	ErrTooFewVertices   = errors.New("polygon needs at least 3 distinct vertices")
	ErrSelfIntersecting = errors.New("polygon ring is self-intersecting")
)

// Polygon is an ordered ring of vertices. The ring may carry an explicit
// closing vertex (first == last) or be implicitly closed; both forms are
// accepted and normalized by Validate.
type Polygon []types.Point

// ring returns the vertices without a duplicated closing vertex.
func (p Polygon) ring() []types.Point {
	if len(p) > 1 && samePoint(p[0], p[len(p)-1]) {
		return p[:len(p)-1]
	}
	return p
}

// Validate checks the ring invariants: at least 3 distinct vertices and no
// self-intersection. Invalid polygons must never reach containment tests.
func (p Polygon) Validate() error {
	ring := p.ring()

	distinct := 0
	for i, v := range ring {
		dup := false
		for j := 0; j < i; j++ {
			if samePoint(v, ring[j]) {
				dup = true
				break
			}
		}
		if !dup {
			distinct++
		}
	}
	if distinct < 3 {
		return ErrTooFewVertices
	}

	n := len(ring)
	for i := 0; i < n; i++ {
		a1 := ring[i]
		a2 := ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// skip the edge itself and the two edges sharing a vertex with it
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1 := ring[j]
			b2 := ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return ErrSelfIntersecting
			}
		}
	}
	return nil
}

// Contains reports whether pt lies inside the ring, by ray-casting parity.
// Points on an edge or vertex count as contained.
func (p Polygon) Contains(pt types.Point) bool {
	ring := p.ring()
	n := len(ring)
	if n < 3 {
		return false
	}

	for i := 0; i < n; i++ {
		if onSegment(ring[i], ring[(i+1)%n], pt) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
			crossLng := a.Lng + (pt.Lat-a.Lat)*(b.Lng-a.Lng)/(b.Lat-a.Lat)
			if pt.Lng < crossLng {
				inside = !inside
			}
		}
	}
	return inside
}

func samePoint(a, b types.Point) bool {
	return absf(a.Lat-b.Lat) < eps && absf(a.Lng-b.Lng) < eps
}

// cross returns the z component of (b-a) x (c-a); sign gives orientation.
func cross(a, b, c types.Point) float64 {
	return (b.Lng-a.Lng)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lng-a.Lng)
}

func direction(a, b, c types.Point) int {
	d := cross(a, b, c)
	switch {
	case d > eps:
		return 1
	case d < -eps:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether pt lies on the closed segment a-b.
func onSegment(a, b, pt types.Point) bool {
	if direction(a, b, pt) != 0 {
		return false
	}
	return pt.Lat >= minf(a.Lat, b.Lat)-eps && pt.Lat <= maxf(a.Lat, b.Lat)+eps &&
		pt.Lng >= minf(a.Lng, b.Lng)-eps && pt.Lng <= maxf(a.Lng, b.Lng)+eps
}

func segmentsIntersect(a1, a2, b1, b2 types.Point) bool {
	d1 := direction(b1, b2, a1)
	d2 := direction(b1, b2, a2)
	d3 := direction(a1, a2, b1)
	d4 := direction(a1, a2, b2)

	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}
	// collinear or touching cases
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
