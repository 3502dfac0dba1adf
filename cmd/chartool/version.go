package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Crafty-The-Fox/YARG.Core/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chartool version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.VersionOrHash)
	},
}
