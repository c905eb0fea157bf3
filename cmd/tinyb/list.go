package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices known to the Bluetooth daemon",
	Long: `Lists every device BlueZ knows about, with its address, RSSI, alias and
connection state. Use --scan to run discovery first.

Examples:
  tinyb list
  tinyb list --scan 5s --adapter hci1`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listScan string

func init() {
	listCmd.Flags().StringVar(&listScan, "scan", "", "Run discovery for the given duration before listing (e.g. 5s)")
	listCmd.Flags().Lookup("scan").NoOptDefVal = "5s"
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if listScan != "" {
		if err := scan(cmd, s, listScan); err != nil {
			return err
		}
	}

	devices, err := s.devices()
	if err != nil {
		return err
	}
	defer func() {
		for _, d := range devices {
			d.Delete()
		}
	}()

	w := newDeviceTable(cmd.OutOrStdout())
	for _, d := range devices {
		if err := listDevice(w, d); err != nil {
			s.log.WithError(err).Warn("skipping device")
		}
	}
	return w.Flush()
}

// newDeviceTable returns a table writer with the device list header
// already written.
func newDeviceTable(out io.Writer) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tRSSI\tCONNECTED\tALIAS")
	return w
}

func listDevice(w io.Writer, d *tinyb.Device) error {
	address, err := d.Address()
	if err != nil {
		return err
	}
	alias, err := d.Alias()
	if err != nil {
		return err
	}
	connected, err := d.Connected()
	if err != nil {
		return err
	}
	// Devices that were not seen in the current discovery have no RSSI.
	rssi := "-"
	if v, err := d.RSSI(); err == nil && v != 0 {
		rssi = fmt.Sprintf("%d", v)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", address, rssi, formatBool(connected), alias)
	return nil
}

// scan runs discovery for the given duration. An interrupt ends the scan
// early without failing the command.
func scan(cmd *cobra.Command, s *session, duration string) error {
	d, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("invalid scan duration: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s.cfg.Discover = true
	stopDiscovery := s.startDiscovery()
	defer stopDiscovery()

	s.log.WithField("duration", d).Info("scanning")
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return nil
}
