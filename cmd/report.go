package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/constants"
	"github.com/jsphweid/arcdex/db"
	"github.com/jsphweid/arcdex/file"
	"github.com/jsphweid/arcdex/model"
	"github.com/jsphweid/arcdex/util"
	"github.com/spf13/cobra"
)

var withMetadata bool

func init() {
	reportCmd.Flags().BoolVar(&withMetadata, "metadata", false, "look up song metadata for reported charts")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Reports statistics for every chart under the chart dir`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

func report() {
	paths := util.GatherAllAffPaths(constants.GetChartDir(), 0)
	chartNumMap := file.CreateChartNumMap(paths)

	metadatas := make(map[string]model.SongMetadata)
	if withMetadata {
		var names []string
		for _, path := range paths[:util.Min(len(paths), 10)] {
			names = append(names, filepath.Base(path))
		}
		metadatas = db.GetSongMetadatas(names)
	}

	var totalCombo int64
	var numCharts int64
	for num := uint32(0); int(num) < len(paths); num++ {
		path := chartNumMap[num]
		res, err := aff.Parse(util.ReadFileOrPanic(path))
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		c, warnings, err := chart.Decode(res)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}

		numCharts += 1
		combo := c.TotalCombo()
		totalCombo += int64(combo)

		name := filepath.Base(path)
		if meta, ok := metadatas[name]; ok {
			fmt.Printf("%04d %v (%v - %v)\n", num, name, meta.Artist, meta.Title)
		} else {
			fmt.Printf("%04d %v\n", num, name)
		}
		fmt.Printf("  combo: %v (tap %v / hold %v / arc %v / arctap %v)\n",
			combo,
			c.ComboOf(model.KindTap),
			c.ComboOf(model.KindHold),
			c.ComboOf(model.KindArc),
			c.ComboOf(model.KindArcTap))
		for _, share := range c.BpmProportion() {
			fmt.Printf("  bpm %v: %.1f%%\n", share.Bpm, share.Fraction*100)
		}
		if len(warnings) > 0 {
			fmt.Printf("  warnings: %v\n", len(warnings))
		}
	}

	fmt.Printf("numCharts: %v\n", numCharts)
	fmt.Printf("totalCombo: %v\n", totalCombo)
}
