package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/midi"
	"github.com/jsphweid/arcdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports a chart as MIDI",
	Long:  `Exports a chart as a Standard MIDI File`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need at least 1 arg...")
		}
		out := strings.TrimSuffix(args[0], ".aff") + ".mid"
		if len(args) > 1 {
			out = args[1]
		}
		export(args[0], out)
	},
}

func export(path string, out string) {
	res, err := aff.Parse(util.ReadFileOrPanic(path))
	if err != nil {
		panic("Could not parse chart: " + err.Error())
	}
	c, warnings, err := chart.Decode(res)
	if err != nil {
		panic("Could not decode chart: " + err.Error())
	}
	for _, w := range warnings {
		fmt.Printf("warning: unknown command %q at position %v\n", w.Raw, w.Position)
	}

	if err := midi.Write(c, out); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", out)
}
