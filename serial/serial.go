// Package serial acquires raw vital-sign samples from the bedside
// acquisition board. The board emits one line per sample in the form
//
//	A=<ecg>,B=<spo2>,C=<temp>[,D=<systolic>,E=<diastolic>]
//
// A Manager owns the port lifecycle, keeps a bounded ring of recent
// samples and fans them out to the processing pipeline over a channel.
// A built-in simulator stands in for the board during development and
// demos.
package serial

import "time"

const (
	// ringCapacity bounds the retained raw samples.
	ringCapacity = 1000

	// maxConsecutiveErrors ends the read loop when the port keeps failing.
	maxConsecutiveErrors = 5

	// errorBackoff is the pause after a failed read before retrying.
	errorBackoff = time.Second

	// simulatorInterval is the sample period of the simulated board.
	simulatorInterval = 100 * time.Millisecond
)
