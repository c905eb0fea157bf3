package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
)

const exampleDeviceAddress = "B0:B4:48:C9:4B:01"

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <device-address>",
	Short: "Show the properties of a device",
	Long: fmt.Sprintf(`Prints every property BlueZ reports for the device.

Examples:
  tinyb info %s`, exampleDeviceAddress),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			return printInfo(cmd.OutOrStdout(), d)
		})
	},
}

func printInfo(w io.Writer, d *tinyb.Device) error {
	address, err := d.Address()
	if err != nil {
		return err
	}
	name, err := d.Name()
	if err != nil {
		return err
	}
	alias, err := d.Alias()
	if err != nil {
		return err
	}
	class, err := d.Class()
	if err != nil {
		return err
	}
	appearance, err := d.Appearance()
	if err != nil {
		return err
	}
	icon, hasIcon, err := d.Icon()
	if err != nil {
		return err
	}
	modalias, hasModalias, err := d.Modalias()
	if err != nil {
		return err
	}
	uuids, err := d.UUIDs()
	if err != nil {
		return err
	}
	rssi, err := d.RSSI()
	if err != nil {
		return err
	}

	printField(w, "Address", address)
	printField(w, "Name", name)
	printField(w, "Alias", alias)
	printField(w, "Class", fmt.Sprintf("0x%06x", class))
	printField(w, "Appearance", fmt.Sprintf("0x%04x", appearance))
	printField(w, "Icon", formatOptional(icon, hasIcon))
	printField(w, "Modalias", formatOptional(modalias, hasModalias))
	printField(w, "RSSI", fmt.Sprintf("%d dBm", rssi))

	for _, flag := range []struct {
		label string
		get   func() (bool, error)
	}{
		{"Paired", d.Paired},
		{"Trusted", d.Trusted},
		{"Blocked", d.Blocked},
		{"Connected", d.Connected},
		{"Legacy pairing", d.LegacyPairing},
	} {
		v, err := flag.get()
		if err != nil {
			return err
		}
		printField(w, flag.label, formatBool(v))
	}

	if a, err := d.Adapter(); err == nil {
		if id, err := a.ID(); err == nil {
			printField(w, "Adapter", id)
		}
		a.Delete()
	}
	printField(w, "UUIDs", formatList(uuids))
	return nil
}
