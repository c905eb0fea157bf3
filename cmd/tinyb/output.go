package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tinygo.org/x/tinyb"
)

var (
	labelColor = color.New(color.Bold)
	yesColor   = color.New(color.FgGreen)
	noColor    = color.New(color.FgRed)
	dimColor   = color.New(color.Faint)
)

// printField writes one "label: value" line with the label padded to a
// fixed width.
func printField(w io.Writer, label string, value string) {
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-15s", label+":"), value)
}

func formatBool(v bool) string {
	if v {
		return yesColor.Sprint("yes")
	}
	return noColor.Sprint("no")
}

// formatOptional renders a value that the daemon may not report.
func formatOptional(v string, ok bool) string {
	if !ok {
		return dimColor.Sprint("(none)")
	}
	return v
}

func formatList(values []string) string {
	if len(values) == 0 {
		return dimColor.Sprint("(none)")
	}
	return strings.Join(values, "\n"+strings.Repeat(" ", 16))
}

// formatUUID appends the short form to UUIDs derived from the Bluetooth
// base UUID.
func formatUUID(s string) string {
	u, err := tinyb.ParseUUID(s)
	switch {
	case err != nil:
		return s
	case u.Is16Bit():
		return s + " " + dimColor.Sprintf("(0x%04x)", u[3])
	case u.Is32Bit():
		return s + " " + dimColor.Sprintf("(0x%08x)", u[3])
	}
	return s
}
