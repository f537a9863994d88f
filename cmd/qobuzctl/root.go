package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harmonode/qobuz/internal/config"
)

var cfg = config.New()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qobuzctl",
	Short: "Qobuz session and storage inspection tool",
	Long: `qobuzctl exercises the Qobuz client library from the command line:
build (signed) API request URLs, perform a login through the session broker,
and inspect hierarchical storage backends.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	// Flags override the QOBUZ_* environment; defaults come from the
	// environment-backed config.
	rootCmd.PersistentFlags().String("base-url", cfg.GetBaseURL(), "API root URL")
	rootCmd.PersistentFlags().String("app-id", cfg.GetAppID(), "application identity")
	rootCmd.PersistentFlags().String("app-secret", cfg.GetAppSecret(), "application secret")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	mustBindPFlag("base_url", "base-url")
	mustBindPFlag("app_id", "app-id")
	mustBindPFlag("app_secret", "app-secret")
	mustBindPFlag("verbose", "verbose")
}

func mustBindPFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}
