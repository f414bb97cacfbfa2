package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vigil"
)

// renderHeader draws the vitals strip shown above the chat panel.
func renderHeader(snap Snapshot, styles Styles, width int) string {
	var parts []string

	if snap.HeartRate > 0 {
		parts = append(parts, styles.Accent.Render(fmt.Sprintf("HR %.0f bpm", snap.HeartRate)))
	} else {
		parts = append(parts, styles.Muted.Render("HR --"))
	}

	if snap.SpO2 > 0 {
		style := styles.Good
		if snap.SpO2 < 90 {
			style = styles.Alert
		}
		parts = append(parts, style.Render(fmt.Sprintf("SpO2 %d%%", snap.SpO2)))
	} else {
		parts = append(parts, styles.Muted.Render("SpO2 --"))
	}

	if snap.Temperature > 0 {
		parts = append(parts, fmt.Sprintf("%.1f°C", snap.Temperature))
	} else {
		parts = append(parts, styles.Muted.Render("--.-°C"))
	}

	if snap.Systolic > 0 {
		parts = append(parts, fmt.Sprintf("BP %d/%d", snap.Systolic, snap.Diastolic))
	} else {
		parts = append(parts, styles.Muted.Render("BP --/--"))
	}

	parts = append(parts, portIndicator(snap.Status, styles))

	line := strings.Join(parts, styles.Muted.Render("  │  "))
	return lipgloss.NewStyle().Width(width).Render(line)
}

func portIndicator(status vigil.SerialStatus, styles Styles) string {
	switch status.State {
	case vigil.PortConnected:
		return styles.Good.Render("● " + status.Port)
	case vigil.PortError:
		return styles.Alert.Render("● " + status.Error)
	default:
		return styles.Muted.Render("○ disconnected")
	}
}
