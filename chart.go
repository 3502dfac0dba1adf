// Package chart maintains the musical timeline of a rhythm-game song: a
// tick-indexed tempo map, time signatures and event markers, with conversion
// between tick positions and playback seconds under a piecewise tempo curve.
// Format-specific import and export lives in collaborator packages; they feed
// this package through its mutation API.
package chart

import (
	"errors"
	"fmt"
)

const (
	// DefaultResolution is the tick resolution (ticks per quarter note) used
	// by charts unless constructed otherwise.
	DefaultResolution = 192

	// DefaultMilliBPM is the tempo of the tick-0 anchor of a fresh chart.
	DefaultMilliBPM = 120000
)

// Chart is the aggregate timeline: one sync track, one event track, and a
// fixed table of instrument parts. A chart exclusively owns every marker
// added to it; a removed marker has no owner and must not be added again.
//
// All methods must be called from a single goroutine; callers needing shared
// access must serialize externally.
type Chart struct {
	resolution uint16

	Sync   SyncTrack
	Events EventTrack

	parts [InstrumentCount][DifficultyCount]*Part

	batchDepth int
}

// New creates a chart with the given tick resolution, anchored at tick 0
// with a 120.000 BPM tempo and a 4/4 time signature.
func New(resolution uint16) (*Chart, error) {
	if resolution == 0 {
		return nil, errors.New("chart resolution must be positive")
	}
	c := &Chart{resolution: resolution}
	c.Sync.insert(&TempoChange{MilliBPM: DefaultMilliBPM})
	c.Sync.insert(NewTimeSignature(0, 4, 4))
	c.Refresh()
	return c, nil
}

// Resolution returns the chart's ticks per quarter note.
func (c *Chart) Resolution() uint16 { return c.resolution }

// Batch runs fn with view refreshing deferred: mutations inside fn do not
// rebuild the typed views or assigned times until fn returns. Use it for bulk
// insertion, where refreshing after every mutation would be quadratic. The
// refresh runs on every exit path, including a panic inside fn; nested
// batches refresh once, when the outermost one returns. Views and conversion
// results read inside fn are stale.
func (c *Chart) Batch(fn func()) {
	c.batchDepth++
	defer func() {
		c.batchDepth--
		if c.batchDepth == 0 {
			c.Refresh()
		}
	}()
	fn()
}

// Refresh rebuilds all typed views and recomputes tempo-change assigned
// times. It runs automatically after every mutation outside a Batch.
func (c *Chart) Refresh() {
	c.Sync.refresh(float64(c.resolution))
	c.Events.refresh()
}

func (c *Chart) mutated() {
	if c.batchDepth == 0 {
		c.Refresh()
	}
}

// AddTempoChange inserts the tempo change into the sync track. The chart
// takes ownership of the marker. A zero tempo would poison every assigned
// time after the marker, so it clamps to the slowest representable tempo.
func (c *Chart) AddTempoChange(t *TempoChange) {
	if t.MilliBPM == 0 {
		t.MilliBPM = minMilliBPM
	}
	c.Sync.insert(t)
	c.mutated()
}

// AddTimeSignature inserts the time signature into the sync track. The chart
// takes ownership of the marker.
func (c *Chart) AddTimeSignature(ts *TimeSignature) {
	c.Sync.insert(ts)
	c.mutated()
}

// RemoveTempoChange removes the tempo change from the sync track, by
// identity. It reports false, changing nothing, if the marker is not in the
// track or sits at tick 0: the tick-0 marker anchors the piecewise tempo
// function and can never be removed.
func (c *Chart) RemoveTempoChange(t *TempoChange) bool {
	return c.removeSync(t)
}

// RemoveTimeSignature removes the time signature from the sync track, by
// identity. The tick-0 anchor cannot be removed; see RemoveTempoChange.
func (c *Chart) RemoveTimeSignature(ts *TimeSignature) bool {
	return c.removeSync(ts)
}

func (c *Chart) removeSync(m SyncMarker) bool {
	if m.Pos() == 0 {
		return false
	}
	if !c.Sync.remove(m) {
		return false
	}
	c.mutated()
	return true
}

// AddEvent inserts a text event, section or venue event into the event
// track. The chart takes ownership of the marker.
func (c *Chart) AddEvent(e EventMarker) {
	c.Events.insert(e)
	c.mutated()
}

// RemoveEvent removes the event from the event track, by identity, reporting
// whether it was found. Events have no anchor restriction.
func (c *Chart) RemoveEvent(e EventMarker) bool {
	if !c.Events.remove(e) {
		return false
	}
	c.mutated()
	return true
}

// TickToTime converts a tick position to playback seconds.
func (c *Chart) TickToTime(tick uint32) float64 {
	return c.Sync.TickToTime(tick, float64(c.resolution))
}

// TimeToTick converts playback seconds to the nearest tick position;
// negative times clamp to tick 0.
func (c *Chart) TimeToTick(time float64) uint32 {
	return c.Sync.TimeToTick(time, float64(c.resolution))
}

// PreviousTempoChange returns the last tempo change at or before tick.
func (c *Chart) PreviousTempoChange(tick uint32) *TempoChange {
	return previous(c.Sync.tempos, tick)
}

// PreviousTimeSignature returns the last time signature at or before tick.
func (c *Chart) PreviousTimeSignature(tick uint32) *TimeSignature {
	return previous(c.Sync.timeSigs, tick)
}

// PreviousSection returns the last section starting at or before tick, or
// nil if the chart has no sections.
func (c *Chart) PreviousSection(tick uint32) *Section {
	return previous(c.Events.sections, tick)
}

// GenerateBeats rebuilds the derived beat markers up to endTick, available
// afterwards through Sync.Beats.
func (c *Chart) GenerateBeats(endTick uint32) {
	c.Sync.generateBeats(float64(c.resolution), endTick)
}

// Part returns the part in the given slot, or nil if none has been set.
// Asking for a slot outside the instrument/difficulty table is a programmer
// error and panics.
func (c *Chart) Part(instrument Instrument, difficulty Difficulty) *Part {
	c.checkSlot(instrument, difficulty)
	return c.parts[instrument][difficulty]
}

// SetPart puts the part into the given slot, replacing any previous part
// there. A nil part clears the slot.
func (c *Chart) SetPart(instrument Instrument, difficulty Difficulty, p *Part) {
	c.checkSlot(instrument, difficulty)
	c.parts[instrument][difficulty] = p
}

func (c *Chart) checkSlot(instrument Instrument, difficulty Difficulty) {
	if !instrument.Valid() || !difficulty.Valid() {
		panic(fmt.Sprintf("chart: no part slot for %v/%v", instrument, difficulty))
	}
}

// HasInstrument reports whether any difficulty slot of the instrument holds
// a part.
func (c *Chart) HasInstrument(instrument Instrument) bool {
	if !instrument.Valid() {
		panic(fmt.Sprintf("chart: no part slots for %v", instrument))
	}
	for _, p := range c.parts[instrument] {
		if p != nil {
			return true
		}
	}
	return false
}

// LastTick returns the largest tick occupied by any marker, event or note in
// the chart.
func (c *Chart) LastTick() uint32 {
	var last uint32
	if n := c.Sync.len(); n > 0 {
		last = c.Sync.markers[n-1].Pos()
	}
	if n := c.Events.len(); n > 0 {
		if t := c.Events.markers[n-1].Pos(); t > last {
			last = t
		}
	}
	for i := range c.parts {
		for _, p := range c.parts[i] {
			if p == nil {
				continue
			}
			if t := p.LastTick(); t > last {
				last = t
			}
		}
	}
	return last
}
