package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arcdex",
	Short: "Arcaea chart toolkit",
	Long:  `Decode aff charts, check their syntax, and report statistics.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
