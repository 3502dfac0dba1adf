package chart

import "slices"

// Marker is anything that lives at a position on a tick-ordered track.
type Marker interface {
	Pos() uint32
}

// track is a tick-ordered sequence of markers of mixed concrete kinds. The
// zero value is ready to use. Typed per-kind views are owned by the wrapping
// track types (SyncTrack, EventTrack) and rebuilt on refresh; the backing
// sequence here is the single source of truth between refreshes.
type track[M Marker] struct {
	markers []M
}

// insert splices the marker in at its tick-sorted position. Markers at the
// same tick keep their insertion order: a new marker goes after existing
// equal-tick ones.
func (t *track[M]) insert(m M) {
	i := upperBound(t.markers, m.Pos())
	t.markers = slices.Insert(t.markers, i, m)
}

// remove removes the marker by identity, not by value, since distinct markers
// at the same tick with the same payload are still distinct timeline entries.
// Reports whether the marker was found.
func (t *track[M]) remove(m M) bool {
	for i, e := range t.markers {
		if any(e) == any(m) {
			t.markers = slices.Delete(t.markers, i, i+1)
			return true
		}
	}
	return false
}

func (t *track[M]) len() int { return len(t.markers) }

// upperBound returns the index of the first marker with a tick strictly
// greater than the query, i.e. the insertion point that keeps equal-tick
// markers in insertion order.
func upperBound[M Marker](markers []M, tick uint32) int {
	i, _ := slices.BinarySearchFunc(markers, tick, func(m M, tick uint32) int {
		if m.Pos() <= tick {
			return -1
		}
		return 1
	})
	return i
}

// closestIndex returns the index of the marker whose tick is nearest the
// query, favoring the earlier marker on a distance tie. Returns -1 for an
// empty sequence.
func closestIndex[M Marker](markers []M, tick uint32) int {
	if len(markers) == 0 {
		return -1
	}
	i := upperBound(markers, tick)
	if i == 0 {
		return 0
	}
	if i == len(markers) {
		return i - 1
	}
	if markers[i].Pos()-tick < tick-markers[i-1].Pos() {
		return i
	}
	return i - 1
}

// previous returns the last marker with a tick at or before the query. If the
// query lies before the first marker, the first marker is returned rather
// than an error: every track this is used on is anchored at tick 0, so a
// clamp is what callers want for the degenerate case.
func previous[M Marker](markers []M, tick uint32) M {
	var zero M
	i := closestIndex(markers, tick)
	if i < 0 {
		return zero
	}
	if markers[i].Pos() > tick && i > 0 {
		i--
	}
	return markers[i]
}
