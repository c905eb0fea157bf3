package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinyb",
	Short: "Manage Bluetooth devices known to BlueZ",
	Long: `Command-line front end for the tinyb device API:

- List the devices known to the Bluetooth daemon
- Show the properties of a device
- Connect, disconnect, pair and cancel pairing
- Set the alias, trusted and blocked flags of a device
- List the GATT services of a connected device`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Ctrl+C is a normal exit
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", formatUserError(err))
		os.Exit(1)
	}
}

func init() {
	// main() prints errors itself
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(cancelPairingCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(trustCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(servicesCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("adapter", "", "Only use the given adapter, such as hci0")
	rootCmd.PersistentFlags().Bool("no-discover", false, "Do not start discovery before looking up a device")
}
