package tui

import "time"

// TickForTest builds a vitals tick message so tests can drive the
// header refresh without waiting on the timer.
func TickForTest() vitalsTickMsg {
	return vitalsTickMsg(time.Now())
}
