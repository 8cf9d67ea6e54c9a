package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runcat/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "runcat",
	Short: "runcat — a tray cat that runs at the speed of your machine",
	Long: `runcat animates a system tray icon whose playback speed tracks a live
system metric: processor load, memory pressure, or network throughput.
The tray menu (and an optional local HTTP API) switches metric, speed,
and theme at runtime.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the runcat version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func main() {
	rootCmd.Version = version.String()
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
