package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/errwatch/errwatch-go/connectivity"
	"github.com/errwatch/errwatch-go/platform"
	"github.com/errwatch/errwatch-go/severity"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Inspect what the SDK would report from this host",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := platform.Detect(cmd.Context())
		if info.Name == "" {
			color.Yellow("Platform: unrecognized target (reports will carry an empty descriptor)")
		} else {
			fmt.Printf("Platform:        %s\n", info.Name)
			fmt.Printf("Version:         %s\n", info.Version)
		}

		if connectivity.NewInterfaceChecker().IsConnected() {
			color.Green("Connectivity:    online")
		} else {
			color.Red("Connectivity:    offline (reports would be dropped by gating callers)")
		}

		if kindName, _ := cmd.Flags().GetString("classify"); kindName != "" {
			fmt.Printf("Kind %q classifies as %s\n", kindName, severity.Classify(severity.Kind(kindName)))
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().String("classify", "", "also print the severity for an error kind")
	rootCmd.AddCommand(doctorCmd)
}
