package chart

import "slices"

type (
	// Note is a single playable note of an instrument part. What the key
	// means (fret, drum pad, vocal pitch) is up to the consumer of the part;
	// the timeline only keeps notes tick-ordered.
	Note struct {
		Tick   uint32
		Length uint32 // sustain length in ticks, 0 for a plain hit
		Key    uint8
		Flags  NoteFlags
	}

	NoteFlags uint8

	// Part holds the notes of one instrument at one difficulty. Parts are
	// owned by the chart's fixed slot table.
	Part struct {
		Instrument Instrument
		Difficulty Difficulty
		Notes      []Note
	}
)

const (
	Forced NoteFlags = 1 << iota
	Tap
	StarPower
)

// NewPart creates an empty part for the given slot.
func NewPart(instrument Instrument, difficulty Difficulty) *Part {
	return &Part{Instrument: instrument, Difficulty: difficulty}
}

// AddNote inserts the note at its tick-sorted position, after any existing
// notes at the same tick.
func (p *Part) AddNote(n Note) {
	i, _ := slices.BinarySearchFunc(p.Notes, n.Tick, func(e Note, tick uint32) int {
		if e.Tick <= tick {
			return -1
		}
		return 1
	})
	p.Notes = slices.Insert(p.Notes, i, n)
}

// Len returns the number of notes in the part.
func (p *Part) Len() int { return len(p.Notes) }

// LastTick returns the tick at which the part ends: the end of the last
// sustain, or 0 for an empty part.
func (p *Part) LastTick() uint32 {
	var last uint32
	for _, n := range p.Notes {
		if end := n.Tick + n.Length; end > last {
			last = end
		}
	}
	return last
}
