package chart

type eventKind uint8

const (
	textEvent eventKind = iota
	sectionEvent
	venueEvent
)

type (
	// EventMarker is an entry on the global event track. Like SyncMarker, it
	// carries a kind tag that the typed views partition on.
	EventMarker interface {
		Marker
		eventKind() eventKind
	}

	// TextEvent is a free-form text marker, e.g. a lyric or a practice hint.
	TextEvent struct {
		Tick uint32
		Text string
	}

	// Section names a stretch of the song ("Verse 1", "Solo") starting at its
	// tick and running until the next section.
	Section struct {
		Tick uint32
		Name string
	}

	// VenueEvent drives background stage effects; the payload is opaque to
	// the timeline.
	VenueEvent struct {
		Tick   uint32
		Effect string
	}
)

func (e *TextEvent) Pos() uint32          { return e.Tick }
func (e *TextEvent) eventKind() eventKind { return textEvent }

func (s *Section) Pos() uint32          { return s.Tick }
func (s *Section) eventKind() eventKind { return sectionEvent }

func (v *VenueEvent) Pos() uint32          { return v.Tick }
func (v *VenueEvent) eventKind() eventKind { return venueEvent }

// EventTrack holds the text events, sections and venue events of a chart in
// one tick-ordered sequence. Unlike the sync track it has no anchor
// requirement and derives nothing from tempo; ordering is the only invariant.
type EventTrack struct {
	track[EventMarker]

	texts    []*TextEvent
	sections []*Section
	venue    []*VenueEvent
}

// Markers returns the combined event sequence in tick order. The returned
// slice is the live backing sequence; callers must not modify it.
func (t *EventTrack) Markers() []EventMarker { return t.markers }

// TextEvents returns the text events in tick order, as of the last refresh.
func (t *EventTrack) TextEvents() []*TextEvent { return t.texts }

// Sections returns the sections in tick order, as of the last refresh.
func (t *EventTrack) Sections() []*Section { return t.sections }

// VenueEvents returns the venue events in tick order, as of the last refresh.
func (t *EventTrack) VenueEvents() []*VenueEvent { return t.venue }

func (t *EventTrack) refresh() {
	t.texts = nil
	t.sections = nil
	t.venue = nil
	for _, m := range t.markers {
		switch m.eventKind() {
		case textEvent:
			t.texts = append(t.texts, m.(*TextEvent))
		case sectionEvent:
			t.sections = append(t.sections, m.(*Section))
		case venueEvent:
			t.venue = append(t.venue, m.(*VenueEvent))
		}
	}
}
