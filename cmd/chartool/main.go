package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	chart "github.com/Crafty-The-Fox/YARG.Core"
	"github.com/Crafty-The-Fox/YARG.Core/midi"
)

var rootCmd = &cobra.Command{
	Use:   "chartool",
	Short: "Inspect and convert rhythm-game chart timelines",
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadChart loads a chart from a .mid/.midi file or a YAML/JSON chart file,
// chosen by extension.
func loadChart(path string) (*chart.Chart, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return midi.ReadFile(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return chart.Read(f)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
