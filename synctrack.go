package chart

import "math"

type syncKind uint8

const (
	tempoMarker syncKind = iota
	timeSigMarker
)

// SyncMarker is an entry on the sync track: a tempo change or a time
// signature. Every marker carries an explicit kind tag so the typed views can
// be rebuilt by partitioning, without relying on runtime type identity.
type SyncMarker interface {
	Marker
	syncKind() syncKind
}

func (t *TempoChange) Pos() uint32        { return t.Tick }
func (t *TempoChange) syncKind() syncKind { return tempoMarker }

func (s *TimeSignature) Pos() uint32        { return s.Tick }
func (s *TimeSignature) syncKind() syncKind { return timeSigMarker }

// SyncTrack holds the tempo changes and time signatures of a chart in one
// tick-ordered sequence, and owns the tick<->time conversion built on top of
// them. The per-kind views and the assigned times of the tempo changes are
// caches over the backing sequence; they are rebuilt by refresh and must not
// be read while a batch of mutations is in progress.
type SyncTrack struct {
	track[SyncMarker]

	tempos   []*TempoChange
	timeSigs []*TimeSignature
	beats    []Beat
}

// Markers returns the combined tempo + time-signature sequence in tick order.
// The returned slice is the live backing sequence; callers must not modify it.
func (s *SyncTrack) Markers() []SyncMarker { return s.markers }

// Tempos returns the tempo changes in tick order, as of the last refresh.
func (s *SyncTrack) Tempos() []*TempoChange { return s.tempos }

// TimeSignatures returns the time signatures in tick order, as of the last
// refresh.
func (s *SyncTrack) TimeSignatures() []*TimeSignature { return s.timeSigs }

// Beats returns the generated beat markers, empty until GenerateBeats has
// been called on the owning chart.
func (s *SyncTrack) Beats() []Beat { return s.beats }

// refresh rebuilds the typed views from the backing sequence and recomputes
// the assigned time of every tempo change.
func (s *SyncTrack) refresh(resolution float64) {
	// fresh slices, so views handed out before this refresh keep their
	// contents instead of being rewritten in place
	s.tempos = make([]*TempoChange, 0, len(s.markers))
	s.timeSigs = make([]*TimeSignature, 0, len(s.markers))
	for _, m := range s.markers {
		switch m.syncKind() {
		case tempoMarker:
			s.tempos = append(s.tempos, m.(*TempoChange))
		case timeSigMarker:
			s.timeSigs = append(s.timeSigs, m.(*TimeSignature))
		}
	}
	s.recomputeTimes(resolution)
}

// recomputeTimes assigns each tempo change its playback time in one forward
// pass: each marker's time is the previous marker's time plus the duration of
// the tick span between them under the previous tempo. Anything other than a
// single linear pass here turns bulk imports quadratic in the number of tempo
// changes.
func (s *SyncTrack) recomputeTimes(resolution float64) {
	var prev *TempoChange
	for _, t := range s.tempos {
		if prev == nil {
			t.time = 0
		} else {
			t.time = prev.time + TickDeltaToTime(float64(t.Tick-prev.Tick), resolution, prev.MilliBPM)
		}
		prev = t
	}
}

// TickToTime converts a tick position to playback seconds using the cached
// assigned times. Only valid after a refresh.
func (s *SyncTrack) TickToTime(tick uint32, resolution float64) float64 {
	i := closestIndex(s.tempos, tick)
	if i < 0 {
		return 0
	}
	if s.tempos[i].Tick > tick && i > 0 {
		i--
	}
	t := s.tempos[i]
	if tick <= t.Tick {
		return t.time
	}
	return t.time + TickDeltaToTime(float64(tick-t.Tick), resolution, t.MilliBPM)
}

// TimeToTick converts playback seconds to the nearest tick position. Negative
// times clamp to tick 0.
func (s *SyncTrack) TimeToTick(time float64, resolution float64) uint32 {
	if time <= 0 || len(s.tempos) == 0 {
		return 0
	}
	t := s.tempos[0]
	for _, c := range s.tempos[1:] {
		if c.time > time {
			break
		}
		t = c
	}
	return t.Tick + TimeDeltaToTick(time-t.time, resolution, t.MilliBPM)
}

// LiveTickToTime converts a tick position to playback seconds directly from
// a raw tempo sequence, without touching the cached assigned times. It exists
// for scratch computations in the middle of a batch, when the cache is known
// stale; after a refresh it agrees with TickToTime up to rounding.
func LiveTickToTime(tick uint32, resolution float64, initialMilliBPM uint32, tempos []*TempoChange) float64 {
	time := 0.0
	lastTick := uint32(0)
	milliBPM := initialMilliBPM
	for _, t := range tempos {
		if t.Tick >= tick {
			break
		}
		time += TickDeltaToTime(float64(t.Tick-lastTick), resolution, milliBPM)
		lastTick = t.Tick
		milliBPM = t.MilliBPM
	}
	return time + TickDeltaToTime(float64(tick-lastTick), resolution, milliBPM)
}

// generateBeats rebuilds the derived beat markers from the time-signature
// sequence, up to and including the last beat at or before endTick. The first
// beat of each measure is a measure beat; the rest are strong beats, or weak
// beats when the meter is counted in subdivisions.
func (s *SyncTrack) generateBeats(resolution float64, endTick uint32) {
	s.beats = nil
	for i, sig := range s.timeSigs {
		regionEnd := endTick
		if i+1 < len(s.timeSigs) && s.timeSigs[i+1].Tick < regionEnd {
			regionEnd = s.timeSigs[i+1].Tick
		}
		num := uint32(sig.Numerator)
		if num == 0 {
			num = 1
		}
		denom := uint32(sig.Denominator)
		if denom == 0 {
			denom = 4
		}
		step := uint32(resolution*4) / denom
		if step == 0 {
			step = 1
		}
		offbeat := StrongBeat
		if denom > 4 {
			offbeat = WeakBeat
		}
		count := uint32(0)
		for tick := sig.Tick; tick < regionEnd || (tick == regionEnd && regionEnd == endTick); {
			kind := offbeat
			if count%num == 0 {
				kind = MeasureBeat
			}
			s.beats = append(s.beats, Beat{Tick: tick, Kind: kind})
			count++
			if tick > math.MaxUint32-step {
				// the next increment would wrap and restart the loop below
				// regionEnd
				break
			}
			tick += step
		}
	}
}
