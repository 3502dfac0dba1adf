package chart

import "fmt"

// Instrument enumerates the playable instruments a chart can carry parts for.
type Instrument uint8

const (
	FiveFretGuitar Instrument = iota
	FiveFretBass
	FiveFretRhythm
	FiveFretCoop
	Keys
	FourLaneDrums
	ProDrums
	Vocals

	// InstrumentCount sizes the per-chart part table.
	InstrumentCount
)

// Difficulty enumerates the chart difficulties of an instrument part.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
	ExpertPlus

	// DifficultyCount sizes the per-chart part table.
	DifficultyCount
)

var instrumentNames = [InstrumentCount]string{
	"guitar", "bass", "rhythm", "guitarcoop", "keys", "drums", "prodrums", "vocals",
}

var difficultyNames = [DifficultyCount]string{
	"easy", "medium", "hard", "expert", "expertplus",
}

func (i Instrument) Valid() bool { return i < InstrumentCount }

func (i Instrument) String() string {
	if !i.Valid() {
		return fmt.Sprintf("instrument(%d)", uint8(i))
	}
	return instrumentNames[i]
}

func (d Difficulty) Valid() bool { return d < DifficultyCount }

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
	return difficultyNames[d]
}

// ParseInstrument returns the instrument with the given name, as written by
// Instrument.String.
func ParseInstrument(name string) (Instrument, error) {
	for i, n := range instrumentNames {
		if n == name {
			return Instrument(i), nil
		}
	}
	return 0, fmt.Errorf("unknown instrument %q", name)
}

// ParseDifficulty returns the difficulty with the given name, as written by
// Difficulty.String.
func ParseDifficulty(name string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if n == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}
