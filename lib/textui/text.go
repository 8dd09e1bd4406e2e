// SPDX-License-Identifier: GPL-2.0-or-later

// Package textui is the simulator's output layer: a Fprintf/Sprintf
// wrapper carrying golang.org/x/text/message's locale-aware
// formatting, and the one-line throughput summary spec §6 mandates.
package textui

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Fprintf is like fmt.Fprintf, but carries the
// golang.org/x/text/message.Printer extensions (thousands separators,
// etc.) and marks a print call as UI output rather than internal
// logging.
func Fprintf(w io.Writer, key string, a ...any) (n int, err error) {
	return printer.Fprintf(w, key, a...)
}

// Sprintf is like fmt.Sprintf, with the same extensions as Fprintf.
func Sprintf(key string, a ...any) string {
	return printer.Sprintf(key, a...)
}

// Summary formats and writes the one-line throughput summary: achieved
// throughput in operations per simulated second
// (opCount * 1e6 / totalDurationUS), to two decimal places. A
// totalDurationUS of zero (e.g. an empty trace) reports a throughput
// of 0.00 rather than dividing by zero.
func Summary(w io.Writer, opCount uint64, totalDurationUS float64) (int, error) {
	throughput := 0.0
	if totalDurationUS > 0 {
		throughput = float64(opCount) * 1e6 / totalDurationUS
	}
	return printer.Fprintf(w, "%.2f\n", throughput)
}
