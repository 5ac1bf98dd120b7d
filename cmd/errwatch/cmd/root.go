package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errwatch/errwatch-go/cmd/errwatch/internal/config"
	"github.com/errwatch/errwatch-go/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "errwatch",
	Short: "errwatch SDK developer tool",
	Long: `errwatch is the developer tool for the errwatch error-reporting SDK.

Validate app credentials against a collection service, send synthetic
test errors, and inspect what the SDK would report from this host.`,
	Version: version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.errwatch/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile to use (default: current profile)")
	rootCmd.PersistentFlags().String("collector-url", "", "collection service URL (overrides profile)")
	rootCmd.PersistentFlags().String("api-key", "", "API key (overrides profile)")
	rootCmd.PersistentFlags().String("app", "", "app identifier (overrides profile)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}
}

// settings are the resolved connection parameters for one invocation:
// profile values with flag overrides on top.
type settings struct {
	CollectorURL  string
	APIKey        string
	AppIdentifier string
}

func resolveSettings(cmd *cobra.Command) settings {
	// The connection flags are persistent and live on the root flag set.
	flags := cmd.Root().PersistentFlags()

	profileName, _ := flags.GetString("profile")
	profile := cfg.Profile(profileName)

	s := settings{
		CollectorURL:  profile.CollectorURL,
		APIKey:        profile.APIKey,
		AppIdentifier: profile.AppIdentifier,
	}

	if v, _ := flags.GetString("collector-url"); v != "" {
		s.CollectorURL = v
	}
	if v, _ := flags.GetString("api-key"); v != "" {
		s.APIKey = v
	}
	if v, _ := flags.GetString("app"); v != "" {
		s.AppIdentifier = v
	}
	return s
}
