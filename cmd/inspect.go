package cmd

import (
	"fmt"

	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/check"
	"github.com/jsphweid/arcdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects a chart",
	Long:  `Decodes a chart and prints every command with its check report`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	text := util.ReadFileOrPanic(path)
	res, err := aff.Parse(text)
	if err != nil {
		panic("Could not parse chart: " + err.Error())
	}

	c, warnings, err := chart.Decode(res)
	if err != nil {
		panic("Could not decode chart: " + err.Error())
	}

	for _, key := range c.HeaderKeys() {
		val, _ := c.Header(key)
		fmt.Printf("%v: %v\n", key, val)
	}
	for _, w := range warnings {
		fmt.Printf("warning: unknown command %q at position %v\n", w.Raw, w.Position)
	}

	for _, r := range check.Chart(c) {
		fmt.Printf("%-6s %+v\n", r.Position, r.Command)
		for _, issue := range r.Report.Issues {
			fmt.Printf("       !! %v: %v\n", issue.Field, issue.Message)
		}
	}
}
