// Package cmd defines the keepick command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/keepick/keepick/match"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "keepick",
	Short: "Pick the credential entry and sequence to auto-type",
	Long: `keepick presents the auto-type candidates from one or more credential
databases and lets you pick the exact entry and keystroke sequence to use.`,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringArrayP("database", "d", nil, "KDBX database file (repeatable)")
	flags.StringArray("keyfile", nil, "Key file for the database at the same position (repeatable)")
	flags.String("password", "", "Password for the KDBX databases (prompted when omitted)")
	flags.Bool("passbolt", false, "Also search the configured Passbolt server")
	flags.Duration("debounce", match.DefaultDebounceInterval, "Quiet period before typed input triggers a search")
	flags.Duration("timeout", 0, "Timeout for server operations (0 for none)")
	flags.Uint("workers", 4, "Parallel decryption workers for server databases")
	flags.Bool("debug", false, "Enable debug output for server clients")

	for _, name := range []string{"database", "keyfile", "password", "passbolt", "debounce", "timeout", "workers", "debug"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	viper.SetConfigName("keepick")
	viper.AddConfigPath("$HOME/.config/keepick")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("keepick")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Warning: reading config:", err)
		}
	}
}
