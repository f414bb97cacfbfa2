package vitals

import (
	"math"

	"vigil"
)

// heartMonitor derives heart rate and RR interval from the raw ECG
// stream with a 3-point sliding-window R-peak detector. The detection
// threshold follows the signal range, which is resampled periodically so
// the detector tracks amplitude drift.
type heartMonitor struct {
	window [3]int
	filled int

	rangeMax   float64
	rangeMin   float64
	newMax     float64
	newMin     float64
	counter    int
	gapSamples int
	heartRate  float64
	rrInterval float64
}

func newHeartMonitor() *heartMonitor {
	return &heartMonitor{
		rangeMax: math.Inf(-1),
		rangeMin: math.Inf(1),
		newMin:   math.Inf(1),
	}
}

// observe feeds one raw ECG value and returns the latest derived heart
// rate (bpm) and RR interval (seconds).
func (h *heartMonitor) observe(ecg int) (float64, float64) {
	v := float64(ecg)
	if v > h.newMax {
		h.newMax = v
	}
	if v < h.newMin {
		h.newMin = v
	}

	h.counter++
	if h.counter >= thresholdUpdateInterval {
		h.rangeMax = h.newMax
		h.rangeMin = h.newMin
		h.newMax = 0
		h.newMin = math.Inf(1)
		h.counter = 0
	}

	if h.filled < 3 {
		h.window[h.filled] = ecg
		h.filled++
		return h.heartRate, h.rrInterval
	}
	h.window[0], h.window[1], h.window[2] = h.window[1], h.window[2], ecg

	if h.window[0] < h.window[1] && h.window[1] > h.window[2] {
		threshold := (h.rangeMax - h.rangeMin) * peakThreshold
		if float64(h.window[1])-h.rangeMin > threshold {
			if h.gapSamples != 0 {
				hr := 60.0 / (float64(h.gapSamples) / sampleRateHz)
				if hr > maxHeartRate {
					hr = maxHeartRate
				}
				h.heartRate = hr
				h.rrInterval = 60.0 / hr
				h.gapSamples = 0
			}
			return h.heartRate, h.rrInterval
		}
	}
	h.gapSamples++

	return h.heartRate, h.rrInterval
}

// waveform normalizes the raw ECG to [-1, 1] and keeps a downsampled
// copy of the recent trace for plotting. Downsampling is largest
// triangle three buckets over a sliding buffer; the tail of each
// processed buffer is kept so consecutive passes overlap.
type waveform struct {
	raw        []vigil.Point
	compressed []vigil.Point
	globalMin  float64
	globalMax  float64
	samples    int
}

func newWaveform() *waveform {
	return &waveform{
		raw:       make([]vigil.Point, 0, lttbBufferSize),
		globalMin: math.Inf(1),
		globalMax: math.Inf(-1),
	}
}

// observe feeds one raw ECG value with its millisecond timestamp and
// returns the normalized value.
func (w *waveform) observe(ecg int, timestamp int64) float64 {
	v := float64(ecg)
	if v > w.globalMax {
		w.globalMax = v
	}
	if v < w.globalMin {
		w.globalMin = v
	}

	normalized := 0.0
	if w.globalMax != w.globalMin {
		normalized = 2.0*(v-w.globalMin)/(w.globalMax-w.globalMin) - 1.0
	}

	w.raw = append(w.raw, vigil.Point{X: float64(timestamp), Y: normalized})
	w.samples++

	if w.samples%rangeUpdateInterval == 0 {
		w.adaptRange()
	}

	if len(w.raw) >= lttbBufferSize {
		w.compressed = lttbDownsample(w.raw, lttbBufferSize/compressionRatio)
		keep := lttbBufferSize / 4
		w.raw = append(w.raw[:0], w.raw[len(w.raw)-keep:]...)
	}

	return normalized
}

// adaptRange re-derives the normalization range from the recent trace
// and blends it into the current range, so a shrinking or drifting
// signal does not stay pinned to an old extreme.
func (w *waveform) adaptRange() {
	if len(w.raw) == 0 {
		return
	}
	recent := w.raw
	if len(recent) > rangeUpdateInterval {
		recent = recent[len(recent)-rangeUpdateInterval:]
	}

	newMin, newMax := math.Inf(1), math.Inf(-1)
	for _, p := range recent {
		// Undo the normalization to recover the raw amplitude.
		original := (p.Y+1.0)/2.0*(w.globalMax-w.globalMin) + w.globalMin
		if original > newMax {
			newMax = original
		}
		if original < newMin {
			newMin = original
		}
	}

	w.globalMax = w.globalMax*(1.0-rangeAlpha) + newMax*rangeAlpha
	w.globalMin = w.globalMin*(1.0-rangeAlpha) + newMin*rangeAlpha
}

// lttbDownsample reduces data to at most threshold points using largest
// triangle three buckets: the first and last points are kept, and each
// bucket contributes the point forming the largest triangle with the
// previously selected point and the next bucket's average.
func lttbDownsample(data []vigil.Point, threshold int) []vigil.Point {
	if len(data) <= threshold {
		out := make([]vigil.Point, len(data))
		copy(out, data)
		return out
	}
	if threshold <= 2 {
		return []vigil.Point{data[0], data[len(data)-1]}
	}

	sampled := make([]vigil.Point, 0, threshold)
	sampled = append(sampled, data[0])

	bucketSize := float64(len(data)-2) / float64(threshold-2)
	a := 0

	for i := 0; i < threshold-2; i++ {
		avgStart := int(float64(i+1)*bucketSize) + 1
		avgEnd := int(float64(i+2)*bucketSize) + 1
		if avgEnd > len(data) {
			avgEnd = len(data)
		}

		var avgX, avgY float64
		if n := avgEnd - avgStart; n > 0 {
			for _, p := range data[avgStart:avgEnd] {
				avgX += p.X
				avgY += p.Y
			}
			avgX /= float64(n)
			avgY /= float64(n)
		}

		rangeStart := int(float64(i)*bucketSize) + 1
		rangeEnd := int(float64(i+1)*bucketSize) + 1
		if rangeEnd > len(data) {
			rangeEnd = len(data)
		}

		maxArea := -1.0
		next := rangeStart
		for idx := rangeStart; idx < rangeEnd; idx++ {
			area := math.Abs((data[a].X*(data[idx].Y-avgY) +
				data[idx].X*(avgY-data[a].Y) +
				avgX*(data[a].Y-data[idx].Y)) / 2.0)
			if area > maxArea {
				maxArea = area
				next = idx
			}
		}

		sampled = append(sampled, data[next])
		a = next
	}

	return append(sampled, data[len(data)-1])
}
