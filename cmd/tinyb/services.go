package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
)

var servicesConnect bool

// servicesCmd represents the services command
var servicesCmd = &cobra.Command{
	Use:   "services <device-address>",
	Short: "List the GATT services and characteristics of a device",
	Long: fmt.Sprintf(`Lists the GATT services resolved for the device together with the
characteristics and their flags. The services are only known while the
device is connected; use --connect to connect first.

Examples:
  tinyb services %s --connect`, exampleDeviceAddress),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, args[0], func(ctx context.Context, s *session, d *tinyb.Device) error {
			if servicesConnect {
				if _, err := d.Connect(); err != nil {
					return err
				}
			}
			services, err := d.Services()
			if err != nil {
				return err
			}
			defer func() {
				for _, svc := range services {
					svc.Delete()
				}
			}()
			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dimColor.Sprint("no services resolved"))
				return nil
			}
			for _, svc := range services {
				if err := printService(cmd.OutOrStdout(), svc); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	servicesCmd.Flags().BoolVar(&servicesConnect, "connect", false, "Connect to the device before listing")
}

func printService(w io.Writer, svc *tinyb.GattService) error {
	uuid, err := svc.UUID()
	if err != nil {
		return err
	}
	primary, err := svc.Primary()
	if err != nil {
		return err
	}
	kind := "secondary"
	if primary {
		kind = "primary"
	}
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint(formatUUID(uuid)), dimColor.Sprint(kind))

	chars, err := svc.Characteristics()
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range chars {
			c.Delete()
		}
	}()
	for _, c := range chars {
		uuid, err := c.UUID()
		if err != nil {
			return err
		}
		flags, err := c.Flags()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s [%s]\n", formatUUID(uuid), strings.Join(flags, ", "))
	}
	return nil
}
