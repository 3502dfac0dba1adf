package chart

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// The on-disk chart shape. Derived data (assigned times, beats) is never
// persisted; it is recomputed when the chart is rebuilt.
type (
	chartFile struct {
		Resolution     uint16          `yaml:"resolution" json:"resolution"`
		Tempos         []tempoRecord   `yaml:"tempos,flow" json:"tempos"`
		TimeSignatures []timeSigRecord `yaml:"timesigs,flow" json:"timesigs"`
		Events         []eventRecord   `yaml:"events,omitempty" json:"events,omitempty"`
		Parts          []partRecord    `yaml:"parts,omitempty" json:"parts,omitempty"`
	}

	tempoRecord struct {
		Tick     uint32 `yaml:"tick" json:"tick"`
		MilliBPM uint32 `yaml:"mbpm" json:"mbpm"`
	}

	timeSigRecord struct {
		Tick  uint32 `yaml:"tick" json:"tick"`
		Num   uint8  `yaml:"num" json:"num"`
		Denom uint8  `yaml:"denom" json:"denom"`
	}

	eventRecord struct {
		Tick uint32 `yaml:"tick" json:"tick"`
		Kind string `yaml:"kind" json:"kind"`
		Text string `yaml:"text" json:"text"`
	}

	partRecord struct {
		Instrument string       `yaml:"instrument" json:"instrument"`
		Difficulty string       `yaml:"difficulty" json:"difficulty"`
		Notes      []noteRecord `yaml:"notes,flow" json:"notes"`
	}

	noteRecord struct {
		Tick  uint32 `yaml:"tick" json:"tick"`
		Len   uint32 `yaml:"len,omitempty" json:"len,omitempty"`
		Key   uint8  `yaml:"key" json:"key"`
		Flags uint8  `yaml:"flags,omitempty" json:"flags,omitempty"`
	}
)

// Read decodes a chart from JSON or YAML, trying JSON first. The decoded
// chart is fully refreshed.
func Read(r io.Reader) (*Chart, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f chartFile
	if errJSON := json.Unmarshal(b, &f); errJSON != nil {
		if errYAML := yaml.Unmarshal(b, &f); errYAML != nil {
			return nil, fmt.Errorf("decoding chart file: %v / %v", errYAML, errJSON)
		}
	}
	return f.build()
}

func (f *chartFile) build() (*Chart, error) {
	resolution := f.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}
	c, err := New(resolution)
	if err != nil {
		return nil, err
	}
	var buildErr error
	c.Batch(func() {
		anchorTempo := c.Sync.Tempos()[0]
		tempoAnchored := false
		for _, t := range f.Tempos {
			if t.MilliBPM == 0 {
				buildErr = fmt.Errorf("tempo change at tick %d has zero bpm", t.Tick)
				return
			}
			if t.Tick == 0 && !tempoAnchored {
				anchorTempo.MilliBPM = t.MilliBPM
				tempoAnchored = true
				continue
			}
			c.AddTempoChange(&TempoChange{Tick: t.Tick, MilliBPM: t.MilliBPM})
		}
		anchorSig := c.Sync.TimeSignatures()[0]
		sigAnchored := false
		for _, ts := range f.TimeSignatures {
			if ts.Tick == 0 && !sigAnchored {
				anchorSig.Numerator = ts.Num
				anchorSig.Denominator = ts.Denom
				sigAnchored = true
				continue
			}
			c.AddTimeSignature(NewTimeSignature(ts.Tick, ts.Num, ts.Denom))
		}
		for _, e := range f.Events {
			switch e.Kind {
			case "text":
				c.AddEvent(&TextEvent{Tick: e.Tick, Text: e.Text})
			case "section":
				c.AddEvent(&Section{Tick: e.Tick, Name: e.Text})
			case "venue":
				c.AddEvent(&VenueEvent{Tick: e.Tick, Effect: e.Text})
			default:
				buildErr = fmt.Errorf("unknown event kind %q", e.Kind)
				return
			}
		}
		for _, pr := range f.Parts {
			instrument, err := ParseInstrument(pr.Instrument)
			if err != nil {
				buildErr = err
				return
			}
			difficulty, err := ParseDifficulty(pr.Difficulty)
			if err != nil {
				buildErr = err
				return
			}
			part := NewPart(instrument, difficulty)
			for _, n := range pr.Notes {
				part.AddNote(Note{Tick: n.Tick, Length: n.Len, Key: n.Key, Flags: NoteFlags(n.Flags)})
			}
			c.SetPart(instrument, difficulty, part)
		}
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return c, nil
}

func (c *Chart) file() *chartFile {
	f := &chartFile{Resolution: c.resolution}
	for _, t := range c.Sync.Tempos() {
		f.Tempos = append(f.Tempos, tempoRecord{Tick: t.Tick, MilliBPM: t.MilliBPM})
	}
	for _, ts := range c.Sync.TimeSignatures() {
		f.TimeSignatures = append(f.TimeSignatures, timeSigRecord{Tick: ts.Tick, Num: ts.Numerator, Denom: ts.Denominator})
	}
	for _, m := range c.Events.Markers() {
		switch e := m.(type) {
		case *TextEvent:
			f.Events = append(f.Events, eventRecord{Tick: e.Tick, Kind: "text", Text: e.Text})
		case *Section:
			f.Events = append(f.Events, eventRecord{Tick: e.Tick, Kind: "section", Text: e.Name})
		case *VenueEvent:
			f.Events = append(f.Events, eventRecord{Tick: e.Tick, Kind: "venue", Text: e.Effect})
		}
	}
	for i := range c.parts {
		for j, p := range c.parts[i] {
			if p == nil {
				continue
			}
			pr := partRecord{Instrument: Instrument(i).String(), Difficulty: Difficulty(j).String()}
			for _, n := range p.Notes {
				pr.Notes = append(pr.Notes, noteRecord{Tick: n.Tick, Len: n.Length, Key: n.Key, Flags: uint8(n.Flags)})
			}
			f.Parts = append(f.Parts, pr)
		}
	}
	return f
}

// WriteYAML encodes the chart as YAML.
func (c *Chart) WriteYAML(w io.Writer) error {
	b, err := yaml.Marshal(c.file())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteJSON encodes the chart as JSON.
func (c *Chart) WriteJSON(w io.Writer) error {
	b, err := json.Marshal(c.file())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
