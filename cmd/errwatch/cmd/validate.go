package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	errwatch "github.com/errwatch/errwatch-go"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate app credentials",
	Long:  "Run the registration handshake against the collection service and report the granted application id.",
	Example: `  errwatch validate --app com.example.app --api-key SECRET
  errwatch validate --collector-url http://localhost:8080 --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := resolveSettings(cmd)
		if s.AppIdentifier == "" {
			return fmt.Errorf("app identifier is required (use --app or set it in the profile)")
		}
		if s.APIKey == "" {
			return fmt.Errorf("API key is required (use --api-key or set it in the profile)")
		}

		opts := []errwatch.Option{}
		if s.CollectorURL != "" {
			opts = append(opts, errwatch.WithBaseURL(s.CollectorURL))
		}
		client := errwatch.New(opts...)

		client.Register(cmd.Context(), s.AppIdentifier, s.APIKey)

		if !client.State().Registered() {
			color.Red("Validation failed: %s", client.LastStatus())
			return fmt.Errorf("validation failed")
		}

		color.Green("Validated %s as application id %d", s.AppIdentifier, client.State().AppID())

		if save, _ := cmd.Flags().GetBool("save"); save {
			profileName, _ := cmd.Root().PersistentFlags().GetString("profile")
			profile := cfg.Profile(profileName)
			profile.CollectorURL = s.CollectorURL
			profile.APIKey = s.APIKey
			profile.AppIdentifier = s.AppIdentifier
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Println("Profile saved.")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("save", false, "save the validated credentials to the profile")
	rootCmd.AddCommand(validateCmd)
}
