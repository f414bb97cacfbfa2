package vigil

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrSourceClosed indicates an operation on a closed Source.
	ErrSourceClosed = errors.New("source closed")

	// ErrNotConnected indicates a serial operation before Connect.
	ErrNotConnected = errors.New("serial port not connected")

	// ErrNoData indicates a read from an empty sample buffer.
	ErrNoData = errors.New("no data available")
)
