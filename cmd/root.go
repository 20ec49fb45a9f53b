package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/logx"
)

var rootCmd = &cobra.Command{
	Use:   "rtk",
	Short: "Reflection token program host CLI",
	Long:  "Command line interface for running a reflection token program host and submitting instructions to it.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
