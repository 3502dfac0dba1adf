package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	chart "github.com/Crafty-The-Fox/YARG.Core"
	"github.com/Crafty-The-Fox/YARG.Core/midi"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a chart between MIDI, YAML and JSON representations",
	Long: `Convert a chart between representations. The input and output formats
are chosen by file extension: .mid/.midi for Standard MIDI Files, .json for
JSON, anything else for YAML.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadChart(args[0])
		if err != nil {
			fatalf("loading %v: %v", args[0], err)
		}
		if err := writeChart(args[1], c); err != nil {
			fatalf("writing %v: %v", args[1], err)
		}
	},
}

func writeChart(path string, c *chart.Chart) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return midi.WriteFile(path, c)
	case ".json":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := c.WriteJSON(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := c.WriteYAML(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
