package main

import (
	"fmt"

	"github.com/spf13/cobra"

	chart "github.com/Crafty-The-Fox/YARG.Core"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the timeline of a chart file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadChart(args[0])
		if err != nil {
			fatalf("loading %v: %v", args[0], err)
		}
		inspect(c)
	},
}

func inspect(c *chart.Chart) {
	last := c.LastTick()
	fmt.Printf("resolution: %d ticks/beat\n", c.Resolution())
	fmt.Printf("length: %d ticks, %.3f s\n", last, c.TickToTime(last))

	fmt.Printf("tempo changes (%d):\n", len(c.Sync.Tempos()))
	for _, t := range c.Sync.Tempos() {
		fmt.Printf("  tick %7d  %9.3f bpm  at %8.3f s\n", t.Tick, t.BPM(), t.Time())
	}

	fmt.Printf("time signatures (%d):\n", len(c.Sync.TimeSignatures()))
	for _, ts := range c.Sync.TimeSignatures() {
		fmt.Printf("  tick %7d  %d/%d\n", ts.Tick, ts.Numerator, ts.Denominator)
	}

	if sections := c.Events.Sections(); len(sections) > 0 {
		fmt.Printf("sections (%d):\n", len(sections))
		for _, s := range sections {
			fmt.Printf("  tick %7d  %8.3f s  %s\n", s.Tick, c.TickToTime(s.Tick), s.Name)
		}
	}

	for instrument := chart.Instrument(0); instrument < chart.InstrumentCount; instrument++ {
		if !c.HasInstrument(instrument) {
			continue
		}
		fmt.Printf("%v:", instrument)
		for difficulty := chart.Difficulty(0); difficulty < chart.DifficultyCount; difficulty++ {
			if p := c.Part(instrument, difficulty); p != nil {
				fmt.Printf(" %v(%d notes)", difficulty, p.Len())
			}
		}
		fmt.Println()
	}
}
