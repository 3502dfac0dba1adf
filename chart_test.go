package chart_test

import (
	"math"
	"testing"

	chart "github.com/Crafty-The-Fox/YARG.Core"
)

func TestNewValidatesResolution(t *testing.T) {
	if _, err := chart.New(0); err == nil {
		t.Error("New(0) should have failed")
	}
	c := newChart(t, chart.DefaultResolution)
	if c.Resolution() != 192 {
		t.Errorf("Resolution() = %d, expected 192", c.Resolution())
	}
}

func TestNewSeedsAnchors(t *testing.T) {
	c := newChart(t, 192)
	tempos := c.Sync.Tempos()
	if len(tempos) != 1 || tempos[0].Tick != 0 || tempos[0].MilliBPM != chart.DefaultMilliBPM {
		t.Fatalf("fresh chart tempos = %+v, expected one 120.000 BPM anchor at tick 0", tempos)
	}
	sigs := c.Sync.TimeSignatures()
	if len(sigs) != 1 || sigs[0].Tick != 0 || sigs[0].Numerator != 4 || sigs[0].Denominator != 4 {
		t.Fatalf("fresh chart time signatures = %+v, expected one 4/4 anchor at tick 0", sigs)
	}
}

func TestAnchorRemovalRejected(t *testing.T) {
	c := newChart(t, 192)
	anchor := c.Sync.Tempos()[0]
	if c.RemoveTempoChange(anchor) {
		t.Error("removing the tick-0 tempo anchor should fail")
	}
	sigAnchor := c.Sync.TimeSignatures()[0]
	if c.RemoveTimeSignature(sigAnchor) {
		t.Error("removing the tick-0 time-signature anchor should fail")
	}
	if len(c.Sync.Tempos()) != 1 || len(c.Sync.TimeSignatures()) != 1 {
		t.Error("rejected removals should leave the chart unchanged")
	}
}

func TestZeroTempoClamped(t *testing.T) {
	c := newChart(t, 192)
	for _, bpm := range []float64{0, -30, 0.0004} {
		if m := chart.NewTempoChange(192, bpm); m.MilliBPM == 0 {
			t.Errorf("NewTempoChange(192, %v) produced a zero tempo", bpm)
		}
	}

	c.AddTempoChange(chart.NewTempoChange(192, 0))
	raw := &chart.TempoChange{Tick: 384}
	c.AddTempoChange(raw)
	if raw.MilliBPM == 0 {
		t.Error("AddTempoChange should clamp a zero tempo")
	}

	// a clamped tempo is absurdly slow but must keep every later assigned
	// time and conversion finite
	for _, tick := range []uint32{192, 384, 576} {
		if got := c.TickToTime(tick); math.IsInf(got, 0) || math.IsNaN(got) {
			t.Errorf("TickToTime(%d) = %v, expected a finite time", tick, got)
		}
	}
	checkMonotonic(t, c)
}

func TestRemoveNotFound(t *testing.T) {
	c := newChart(t, 192)
	if c.RemoveTempoChange(chart.NewTempoChange(384, 60)) {
		t.Error("removing a marker that was never added should fail")
	}
	if c.RemoveEvent(&chart.Section{Tick: 10, Name: "nope"}) {
		t.Error("removing an event that was never added should fail")
	}
}

func TestRemoveByIdentity(t *testing.T) {
	c := newChart(t, 192)
	a := chart.NewTempoChange(384, 60)
	b := chart.NewTempoChange(384, 60) // same tick and value, distinct marker
	c.AddTempoChange(a)
	c.AddTempoChange(b)
	if !c.RemoveTempoChange(a) {
		t.Fatal("RemoveTempoChange failed for an added marker")
	}
	tempos := c.Sync.Tempos()
	if len(tempos) != 2 || tempos[1] != b {
		t.Errorf("removal by identity should have left the other equal-valued marker")
	}
}

func TestEqualTickInsertionOrder(t *testing.T) {
	c := newChart(t, 192)
	first := chart.NewTimeSignature(384, 3, 4)
	second := chart.NewTimeSignature(384, 7, 8)
	c.AddTimeSignature(first)
	c.AddTimeSignature(second)
	sigs := c.Sync.TimeSignatures()
	if sigs[1] != first || sigs[2] != second {
		t.Error("markers at an equal tick should keep their insertion order")
	}
}

func TestPreviousTimeSignatureScenario(t *testing.T) {
	c := newChart(t, 192)
	threeFour := chart.NewTimeSignature(768, 3, 4)
	c.AddTimeSignature(threeFour)

	if got := c.PreviousTimeSignature(900); got != threeFour {
		t.Errorf("PreviousTimeSignature(900) = %+v, expected the 3/4 marker", got)
	}
	if got := c.PreviousTimeSignature(100); got.Tick != 0 || got.Numerator != 4 {
		t.Errorf("PreviousTimeSignature(100) = %+v, expected the tick-0 4/4 anchor", got)
	}
	if got := c.PreviousTimeSignature(768); got != threeFour {
		t.Errorf("PreviousTimeSignature(768) = %+v, expected the 3/4 marker", got)
	}
}

func TestPreviousTempoChange(t *testing.T) {
	c := newChart(t, 192)
	m := chart.NewTempoChange(384, 60)
	c.AddTempoChange(m)
	if got := c.PreviousTempoChange(383); got.Tick != 0 {
		t.Errorf("PreviousTempoChange(383) = %+v, expected the anchor", got)
	}
	if got := c.PreviousTempoChange(384); got != m {
		t.Errorf("PreviousTempoChange(384) = %+v, expected the tick-384 marker", got)
	}
}

func TestEventTrackViews(t *testing.T) {
	c := newChart(t, 192)
	verse := &chart.Section{Tick: 768, Name: "Verse 1"}
	c.Batch(func() {
		c.AddEvent(&chart.TextEvent{Tick: 100, Text: "phrase_start"})
		c.AddEvent(verse)
		c.AddEvent(&chart.VenueEvent{Tick: 50, Effect: "lighting (flare_fast)"})
		c.AddEvent(&chart.Section{Tick: 1536, Name: "Chorus 1"})
	})

	if got := len(c.Events.Markers()); got != 4 {
		t.Fatalf("event track has %d markers, expected 4", got)
	}
	if got := c.Events.Sections(); len(got) != 2 || got[0] != verse {
		t.Errorf("Sections() = %+v, expected Verse 1 then Chorus 1", got)
	}
	if got := c.Events.TextEvents(); len(got) != 1 || got[0].Text != "phrase_start" {
		t.Errorf("TextEvents() = %+v, expected just phrase_start", got)
	}
	if got := c.Events.VenueEvents(); len(got) != 1 || got[0].Tick != 50 {
		t.Errorf("VenueEvents() = %+v, expected just the tick-50 event", got)
	}

	// backing order is by tick regardless of kind
	markers := c.Events.Markers()
	for i := 1; i < len(markers); i++ {
		if markers[i].Pos() < markers[i-1].Pos() {
			t.Fatal("event track backing sequence is not tick-ordered")
		}
	}

	if got := c.PreviousSection(900); got != verse {
		t.Errorf("PreviousSection(900) = %+v, expected Verse 1", got)
	}
	if !c.RemoveEvent(verse) {
		t.Fatal("RemoveEvent failed for an added section")
	}
	if got := c.Events.Sections(); len(got) != 1 || got[0].Name != "Chorus 1" {
		t.Errorf("Sections() after removal = %+v, expected just Chorus 1", got)
	}
}

func TestPreviousSectionEmpty(t *testing.T) {
	c := newChart(t, 192)
	if got := c.PreviousSection(100); got != nil {
		t.Errorf("PreviousSection on a chart without sections = %+v, expected nil", got)
	}
}

func TestBatchDefersRefresh(t *testing.T) {
	c := newChart(t, 192)
	c.Batch(func() {
		c.AddTempoChange(chart.NewTempoChange(384, 60))
		if got := len(c.Sync.Tempos()); got != 1 {
			t.Errorf("views refreshed inside a batch: %d tempos", got)
		}
		c.Batch(func() {
			c.AddTempoChange(chart.NewTempoChange(768, 90))
		})
		if got := len(c.Sync.Tempos()); got != 1 {
			t.Errorf("views refreshed by a nested batch: %d tempos", got)
		}
	})
	if got := len(c.Sync.Tempos()); got != 3 {
		t.Errorf("views not refreshed after the outermost batch: %d tempos", got)
	}
}

func TestBatchRefreshesOnPanic(t *testing.T) {
	c := newChart(t, 192)
	func() {
		defer func() { recover() }()
		c.Batch(func() {
			c.AddTempoChange(chart.NewTempoChange(384, 60))
			panic("importer blew up")
		})
	}()
	if got := len(c.Sync.Tempos()); got != 2 {
		t.Errorf("views not refreshed after a panicking batch: %d tempos", got)
	}
}

func TestPartSlots(t *testing.T) {
	c := newChart(t, 192)
	if c.HasInstrument(chart.FiveFretGuitar) {
		t.Error("fresh chart should have no instruments")
	}
	p := chart.NewPart(chart.FiveFretGuitar, chart.Expert)
	p.AddNote(chart.Note{Tick: 192, Length: 96, Key: 2})
	p.AddNote(chart.Note{Tick: 0, Key: 0, Flags: chart.Forced})
	c.SetPart(chart.FiveFretGuitar, chart.Expert, p)

	if !c.HasInstrument(chart.FiveFretGuitar) {
		t.Error("HasInstrument should report the set part")
	}
	if c.HasInstrument(chart.Vocals) {
		t.Error("HasInstrument should not report unset instruments")
	}
	got := c.Part(chart.FiveFretGuitar, chart.Expert)
	if got != p || got.Len() != 2 || got.Notes[0].Tick != 0 {
		t.Errorf("Part slot returned %+v, expected the tick-sorted part", got)
	}
	if c.Part(chart.FiveFretGuitar, chart.Easy) != nil {
		t.Error("unset difficulty slot should be nil")
	}
	if c.LastTick() != 288 {
		t.Errorf("LastTick() = %d, expected 288 (end of the sustain)", c.LastTick())
	}
}

func TestPartSlotPanicsOnInvalid(t *testing.T) {
	c := newChart(t, 192)
	defer func() {
		if recover() == nil {
			t.Error("Part with an invalid instrument should panic")
		}
	}()
	c.Part(chart.InstrumentCount, chart.Easy)
}

func TestSyncViewsMatchBacking(t *testing.T) {
	c := newChart(t, 192)
	c.Batch(func() {
		c.AddTempoChange(chart.NewTempoChange(384, 60))
		c.AddTimeSignature(chart.NewTimeSignature(384, 3, 4))
		c.AddTempoChange(chart.NewTempoChange(100, 90))
	})
	markers := c.Sync.Markers()
	var tempos, sigs int
	for i, m := range markers {
		if i > 0 && m.Pos() < markers[i-1].Pos() {
			t.Fatal("sync track backing sequence is not tick-ordered")
		}
		switch m.(type) {
		case *chart.TempoChange:
			tempos++
		case *chart.TimeSignature:
			sigs++
		}
	}
	if tempos != len(c.Sync.Tempos()) || sigs != len(c.Sync.TimeSignatures()) {
		t.Errorf("typed views (%d tempos, %d signatures) diverge from backing (%d, %d)",
			len(c.Sync.Tempos()), len(c.Sync.TimeSignatures()), tempos, sigs)
	}
}
