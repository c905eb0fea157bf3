package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
)

var (
	connectProfile    string
	disconnectProfile string
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect <device-address>",
	Short: "Connect to a device or one of its profiles",
	Long: fmt.Sprintf(`Connects to the device. With --profile only the given profile is
connected; short UUIDs such as 110b are expanded with the Bluetooth base UUID.

Examples:
  tinyb connect %s
  tinyb connect %s --profile 110b`, exampleDeviceAddress, exampleDeviceAddress),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileUUID(connectProfile)
		if err != nil {
			return err
		}
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			var ok bool
			if profile != "" {
				ok, err = d.ConnectProfile(profile)
			} else {
				ok, err = d.Connect()
			}
			if err != nil {
				return err
			}
			return report(cmd, ok, "connected", "connection refused")
		})
	},
}

// disconnectCmd represents the disconnect command
var disconnectCmd = &cobra.Command{
	Use:   "disconnect <device-address>",
	Short: "Disconnect from a device or one of its profiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileUUID(disconnectProfile)
		if err != nil {
			return err
		}
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			var ok bool
			if profile != "" {
				ok, err = d.DisconnectProfile(profile)
			} else {
				ok, err = d.Disconnect()
			}
			if err != nil {
				return err
			}
			return report(cmd, ok, "disconnected", "not connected")
		})
	},
}

// pairCmd represents the pair command
var pairCmd = &cobra.Command{
	Use:   "pair <device-address>",
	Short: "Pair with a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			ok, err := d.Pair()
			if err != nil {
				return err
			}
			return report(cmd, ok, "paired", "pairing failed")
		})
	},
}

// cancelPairingCmd represents the cancel-pairing command
var cancelPairingCmd = &cobra.Command{
	Use:   "cancel-pairing <device-address>",
	Short: "Cancel a pairing in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			ok, err := d.CancelPairing()
			if err != nil {
				return err
			}
			return report(cmd, ok, "pairing cancelled", "no pairing in progress")
		})
	},
}

func init() {
	connectCmd.Flags().StringVar(&connectProfile, "profile", "", "Profile UUID to connect (e.g. 110b)")
	disconnectCmd.Flags().StringVar(&disconnectProfile, "profile", "", "Profile UUID to disconnect (e.g. 110b)")
}

// profileUUID validates a --profile value and returns its 128-bit form. An
// empty value stays empty.
func profileUUID(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	uuid, err := tinyb.ParseUUID(s)
	if err != nil {
		return "", fmt.Errorf("invalid profile UUID %q", s)
	}
	return uuid.String(), nil
}

// report prints the outcome of an operation that returns whether it took
// effect.
func report(cmd *cobra.Command, ok bool, success, failure string) error {
	if ok {
		fmt.Fprintln(cmd.OutOrStdout(), yesColor.Sprint(success))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), noColor.Sprint(failure))
	}
	return nil
}
