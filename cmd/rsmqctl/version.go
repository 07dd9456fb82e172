package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rsmqctl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rsmqctl")
		fmt.Println("Version: 0.1.0")
		fmt.Println("Build: development")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
