package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
)

// aliasCmd represents the alias command
var aliasCmd = &cobra.Command{
	Use:   "alias <device-address> [name]",
	Short: "Show or set the alias of a device",
	Long: fmt.Sprintf(`Without a name, prints the alias of the device. With a name, sets it.
An empty name ("") resets the alias to the remote name of the device.

Examples:
  tinyb alias %s
  tinyb alias %s "Lab SensorTag"`, exampleDeviceAddress, exampleDeviceAddress),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			if len(args) == 2 {
				if err := d.SetAlias(args[1]); err != nil {
					return err
				}
			}
			alias, err := d.Alias()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), alias)
			return nil
		})
	},
}

// trustCmd represents the trust command
var trustCmd = &cobra.Command{
	Use:   "trust <device-address> [true|false]",
	Short: "Show or set whether a device is trusted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlag(cmd, args, (*tinyb.Device).Trusted, (*tinyb.Device).SetTrusted)
	},
}

// blockCmd represents the block command
var blockCmd = &cobra.Command{
	Use:   "block <device-address> [true|false]",
	Short: "Show or set whether a device is blocked",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlag(cmd, args, (*tinyb.Device).Blocked, (*tinyb.Device).SetBlocked)
	},
}

// runFlag prints a boolean device property, setting it first when a value
// is given.
func runFlag(cmd *cobra.Command, args []string, get func(*tinyb.Device) (bool, error), set func(*tinyb.Device, bool) error) error {
	var (
		value  bool
		update = len(args) == 2
	)
	if update {
		var err error
		if value, err = strconv.ParseBool(args[1]); err != nil {
			return fmt.Errorf("invalid value %q: must be true or false", args[1])
		}
	}
	return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
		if update {
			if err := set(d, value); err != nil {
				return err
			}
		}
		v, err := get(d)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatBool(v))
		return nil
	})
}
