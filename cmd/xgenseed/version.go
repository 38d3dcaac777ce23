package main

import (
	"fmt"

	"github.com/aretw0/xgenseed"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of xgenseed",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xgenseed version %s\n", xgenseed.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
