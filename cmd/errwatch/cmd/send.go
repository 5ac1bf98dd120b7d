package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	errwatch "github.com/errwatch/errwatch-go"
	"github.com/errwatch/errwatch-go/severity"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a synthetic test error",
	Long:  "Register with the collection service and send one synthetic error report, to verify the pipeline end to end.",
	Example: `  errwatch send --kind io --message "disk full"
  errwatch send --kind process-spawn --message "worker failed to start" --stack "$(cat stack.txt)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := resolveSettings(cmd)

		kindName, _ := cmd.Flags().GetString("kind")
		message, _ := cmd.Flags().GetString("message")
		stack, _ := cmd.Flags().GetString("stack")

		if message == "" {
			return fmt.Errorf("--message is required")
		}

		kind := severity.Kind(kindName)
		level := severity.Classify(kind)

		opts := []errwatch.Option{}
		if s.CollectorURL != "" {
			opts = append(opts, errwatch.WithBaseURL(s.CollectorURL))
		}
		client := errwatch.New(opts...)

		if s.AppIdentifier != "" && s.APIKey != "" {
			client.Register(cmd.Context(), s.AppIdentifier, s.APIKey)
			if !client.State().Registered() {
				color.Yellow("Registration failed (%s), sending unregistered", client.LastStatus())
			}
		}

		// A status change across the call is the only failure signal the
		// fire-and-forget report exposes.
		before := client.LastStatus()
		client.Report(cmd.Context(), kind, message, stack)
		if status := client.LastStatus(); status != before {
			color.Red("Send failed: %s", status)
			return fmt.Errorf("send failed")
		}

		color.Green("Sent %s error (app id %d): %s", level, client.State().AppID(), message)
		return nil
	},
}

func init() {
	sendCmd.Flags().String("kind", "unknown", "error kind (io, timeout, process-spawn, ...)")
	sendCmd.Flags().String("message", "", "error message")
	sendCmd.Flags().String("stack", "", "stack trace text")
	rootCmd.AddCommand(sendCmd)
}
