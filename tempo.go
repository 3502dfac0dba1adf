package chart

import (
	"fmt"
	"math"
)

type (
	// TempoChange sets the playback speed from its tick onwards, until the
	// next tempo change. The tempo is stored fixed-point at three decimals
	// (MilliBPM), as persisted chart formats carry tempos at that precision
	// and round-tripping through float64 would drift. The playback time of
	// the marker is derived from all earlier markers and cached; it is
	// recomputed on every refresh and read through Time().
	TempoChange struct {
		Tick     uint32
		MilliBPM uint32

		time float64
	}

	// TimeSignature sets the meter from its tick onwards, until the next
	// signature change. The denominator is the actual note value (4 = quarter
	// note), not the exponent form MIDI uses on the wire.
	TimeSignature struct {
		Tick        uint32
		Numerator   uint8
		Denominator uint8
	}

	// Beat is a derived marker: one per beat, generated from the tempo and
	// time-signature sequences. Beats are never authored directly.
	Beat struct {
		Tick uint32
		Kind BeatKind
	}

	BeatKind uint8
)

const (
	// MeasureBeat is the first beat of a measure.
	MeasureBeat BeatKind = iota
	// StrongBeat is a non-measure beat in a simple meter.
	StrongBeat
	// WeakBeat is a non-measure beat in a meter counted in subdivisions
	// (denominator above 4).
	WeakBeat
)

var beatKindNames = [...]string{"measure", "strong", "weak"}

func (k BeatKind) String() string {
	if int(k) >= len(beatKindNames) {
		return fmt.Sprintf("beatkind(%d)", int(k))
	}
	return beatKindNames[k]
}

// minMilliBPM is the slowest representable tempo, 0.001 BPM. A zero tempo
// would make the tick/time conversions divide by zero, so every ingestion
// path clamps to this.
const minMilliBPM = 1

// NewTempoChange creates a tempo change at the given tick, rounding the tempo
// to the three-decimal fixed-point representation. Tempos at or below the
// fixed-point resolution clamp to the slowest representable tempo.
func NewTempoChange(tick uint32, bpm float64) *TempoChange {
	milliBPM := uint32(0)
	if bpm > 0 {
		milliBPM = uint32(math.Round(bpm * 1000))
	}
	if milliBPM == 0 {
		milliBPM = minMilliBPM
	}
	return &TempoChange{Tick: tick, MilliBPM: milliBPM}
}

// NewTimeSignature creates a time-signature change at the given tick.
func NewTimeSignature(tick uint32, numerator, denominator uint8) *TimeSignature {
	return &TimeSignature{Tick: tick, Numerator: numerator, Denominator: denominator}
}

// BPM returns the tempo in beats per minute.
func (t *TempoChange) BPM() float64 { return float64(t.MilliBPM) / 1000 }

// Time returns the playback time in seconds at which this marker's tick
// occurs. The value is derived from the whole tempo sequence; it is only
// valid after the owning chart has been refreshed since the last mutation.
func (t *TempoChange) Time() float64 { return t.time }

// TickDeltaToTime converts a tick delta to a time delta in seconds, assuming
// the tempo stays constant over the whole delta. Resolution must be positive
// and milliBPM nonzero; both are guaranteed by chart construction.
func TickDeltaToTime(tickDelta, resolution float64, milliBPM uint32) float64 {
	return tickDelta / resolution * (60000 / float64(milliBPM))
}

// TimeDeltaToTick converts a time delta in seconds to a tick delta, assuming
// a constant tempo. The result is rounded to the nearest tick, so repeated
// round-trips through TickDeltaToTime may drift by up to one tick.
func TimeDeltaToTick(timeDelta, resolution float64, milliBPM uint32) uint32 {
	return uint32(math.Round(timeDelta * resolution * float64(milliBPM) / 60000))
}
