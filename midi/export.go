package midi

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	chart "github.com/Crafty-The-Fox/YARG.Core"
)

// Export converts the chart into a type-1 SMF: the first track carries the
// sync markers in tick order, followed by one track for text events and
// sections, and one for venue events when the chart has any.
func Export(c *chart.Chart) *smf.SMF {
	var mid smf.SMF
	mid.TimeFormat = smf.MetricTicks(c.Resolution())

	var sync smf.Track
	var tick uint32
	for _, m := range c.Sync.Markers() {
		var msg smf.Message
		switch m := m.(type) {
		case *chart.TempoChange:
			msg = smf.MetaTempo(m.BPM())
		case *chart.TimeSignature:
			msg = smf.MetaMeter(m.Numerator, m.Denominator)
		default:
			continue
		}
		sync = append(sync, smf.Event{Delta: m.Pos() - tick, Message: msg})
		tick = m.Pos()
	}
	sync.Close(0)
	mid.Tracks = append(mid.Tracks, sync)

	var events smf.Track
	events = append(events, smf.Event{Delta: 0, Message: smf.MetaTrackSequenceName(eventsTrackName)})
	tick = 0
	hasVenue := false
	for _, m := range c.Events.Markers() {
		var msg smf.Message
		switch e := m.(type) {
		case *chart.TextEvent:
			msg = smf.MetaText("[" + e.Text + "]")
		case *chart.Section:
			msg = smf.MetaText("[section " + e.Name + "]")
		default:
			hasVenue = true
			continue
		}
		events = append(events, smf.Event{Delta: m.Pos() - tick, Message: msg})
		tick = m.Pos()
	}
	events.Close(0)
	mid.Tracks = append(mid.Tracks, events)

	if hasVenue {
		var venue smf.Track
		venue = append(venue, smf.Event{Delta: 0, Message: smf.MetaTrackSequenceName(venueTrackName)})
		tick = 0
		for _, v := range c.Events.VenueEvents() {
			venue = append(venue, smf.Event{Delta: v.Tick - tick, Message: smf.MetaText("[" + v.Effect + "]")})
			tick = v.Tick
		}
		venue.Close(0)
		mid.Tracks = append(mid.Tracks, venue)
	}

	return &mid
}

// WriteFile writes the chart to path as a Standard MIDI File.
func WriteFile(path string, c *chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating midi file: %w", err)
	}
	if _, err := Export(c).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing midi file: %w", err)
	}
	return f.Close()
}
