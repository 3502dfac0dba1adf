// Package midi translates between Standard MIDI Files and the chart
// timeline. It is a format collaborator: it owns the wire representation and
// feeds the chart package through its batch mutation API.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"

	chart "github.com/Crafty-The-Fox/YARG.Core"
)

// Track names with special meaning in rhythm-game MIDI charts.
const (
	eventsTrackName = "EVENTS"
	venueTrackName  = "VENUE"
)

// ReadFile parses the SMF file at path into a chart.
func ReadFile(path string) (*chart.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Import(data)
}

// Import parses SMF data into a chart. The chart's resolution is the file's
// metric-ticks division; files with SMPTE timing are rejected.
func Import(data []byte) (c *chart.Chart, err error) {
	// the smf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("parsing midi file: %v", r)
		}
	}()
	mid, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return FromSMF(mid)
}

// FromSMF converts an already-parsed SMF into a chart.
func FromSMF(mid *smf.SMF) (*chart.Chart, error) {
	ticks, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v, expected metric ticks", mid.TimeFormat)
	}
	if ticks == 0 {
		return nil, errors.New("midi file has zero ticks per quarter note")
	}
	c, err := chart.New(uint16(ticks))
	if err != nil {
		return nil, err
	}
	c.Batch(func() {
		tempoAnchor := c.Sync.Tempos()[0]
		sigAnchor := c.Sync.TimeSignatures()[0]
		tempoAnchored, sigAnchored := false, false
		for _, track := range mid.Tracks {
			name := trackName(track)
			var tick uint32
			for _, ev := range track {
				tick += ev.Delta
				msg := ev.Message

				var bpm float64
				if msg.GetMetaTempo(&bpm) {
					tc := chart.NewTempoChange(tick, bpm)
					if tick == 0 && !tempoAnchored {
						tempoAnchor.MilliBPM = tc.MilliBPM
						tempoAnchored = true
					} else {
						c.AddTempoChange(tc)
					}
					continue
				}

				var num, denom, cpt, dsqpq uint8
				if msg.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq) {
					if tick == 0 && !sigAnchored {
						sigAnchor.Numerator = num
						sigAnchor.Denominator = denom
						sigAnchored = true
					} else {
						c.AddTimeSignature(chart.NewTimeSignature(tick, num, denom))
					}
					continue
				}

				var text string
				if msg.GetMetaText(&text) || msg.GetMetaMarker(&text) {
					addTextEvent(c, name, tick, text)
				}
			}
		}
	})
	return c, nil
}

func addTextEvent(c *chart.Chart, trackName string, tick uint32, text string) {
	if trackName == venueTrackName {
		c.AddEvent(&chart.VenueEvent{Tick: tick, Effect: stripBrackets(text)})
		return
	}
	if section, ok := sectionName(text); ok {
		c.AddEvent(&chart.Section{Tick: tick, Name: section})
		return
	}
	c.AddEvent(&chart.TextEvent{Tick: tick, Text: stripBrackets(text)})
}

// sectionName extracts the section name from "[section Verse 1]" or
// "[prc_verse_1]" style events.
func sectionName(text string) (string, bool) {
	text = stripBrackets(text)
	if name, ok := strings.CutPrefix(text, "section "); ok {
		return name, true
	}
	if name, ok := strings.CutPrefix(text, "prc_"); ok {
		return name, true
	}
	return "", false
}

func stripBrackets(text string) string {
	text = strings.TrimPrefix(text, "[")
	return strings.TrimSuffix(text, "]")
}

func trackName(track smf.Track) string {
	var tick uint32
	for _, ev := range track {
		tick += ev.Delta
		if tick > 0 {
			break
		}
		var name string
		if ev.Message.GetMetaTrackName(&name) {
			return name
		}
	}
	return ""
}
