package geo

import "iter"

// WGS84 bounds, inclusive.
const (
	MinLon = -180.0
	MaxLon = 180.0
	MinLat = -90.0
	MaxLat = 90.0
)

// Pair is a [Lon, Lat] coordinate pair.
type Pair struct {
	Lon, Lat float64
}

// InRange reports whether the pair lies within WGS84 bounds.
func (p Pair) InRange() bool {
	return p.Lon >= MinLon && p.Lon <= MaxLon && p.Lat >= MinLat && p.Lat <= MaxLat
}

// Coordinates yields every array of exactly two numbers found under v,
// depth first, in document order. Anything else is walked into or ignored,
// so malformed geometry never fails the walk. A two-element array that is
// not all-numeric is treated as a container, not a broken pair.
func Coordinates(v Value) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		walkPairs(v, yield)
	}
}

func walkPairs(v Value, yield func(Pair) bool) bool {
	switch v.Kind {
	case Array:
		if p, ok := asPair(v); ok {
			return yield(p)
		}
		for _, item := range v.Items {
			if !walkPairs(item, yield) {
				return false
			}
		}
	case Object:
		for _, m := range v.Members {
			if !walkPairs(m.Value, yield) {
				return false
			}
		}
	}
	return true
}

func asPair(v Value) (Pair, bool) {
	if v.Kind != Array || len(v.Items) != 2 {
		return Pair{}, false
	}
	lon, lat := v.Items[0], v.Items[1]
	if lon.Kind != Number || lat.Kind != Number {
		return Pair{}, false
	}
	return Pair{Lon: lon.Number, Lat: lat.Number}, true
}

// RingClosed reports whether a linear ring's first and last positions are equal.
// Empty rings count as closed. ok is false when ring is not an array.
func RingClosed(ring Value) (closed, ok bool) {
	if ring.Kind != Array {
		return false, false
	}
	if len(ring.Items) == 0 {
		return true, true
	}
	return ring.Items[0].Equal(ring.Items[len(ring.Items)-1]), true
}
