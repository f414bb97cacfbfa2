// Package vitals turns raw board samples into display-ready vital signs.
// The pipeline normalizes and downsamples the ECG waveform, detects
// R-peaks to derive heart rate, smooths the temperature channel and
// validates SpO2. A Processor drains the acquisition feed in the
// background and keeps a bounded history of processed samples.
package vitals

const (
	// historyCapacity bounds the retained processed samples.
	historyCapacity = 1000

	// lttbBufferSize is how many waveform points accumulate before a
	// downsampling pass runs.
	lttbBufferSize = 1000

	// compressionRatio is the input-to-output point ratio of a pass.
	compressionRatio = 10

	// rangeUpdateInterval is how often, in samples, the normalization
	// range adapts to the recent signal.
	rangeUpdateInterval = 500

	// rangeAlpha smooths normalization range updates.
	rangeAlpha = 0.1

	// sampleRateHz is the board's ECG sample rate.
	sampleRateHz = 250

	// peakThreshold is the fraction of the signal range an R-peak must
	// rise above the floor to count.
	peakThreshold = 0.6

	// thresholdUpdateInterval is how often, in samples, the peak
	// detection range resets.
	thresholdUpdateInterval = 300

	// maxHeartRate caps the derived heart rate.
	maxHeartRate = 100.0

	// Temperature calibration. The probe reads tenths of a degree and
	// runs consistently hot, hence the scale factor. Readings far below
	// room temperature mean the probe is off the patient.
	tempScale       = 0.8
	roomTemperature = 23.2
	maxTemperature  = 37.2

	// tempWindow and tempTrim configure the trimmed-mean filter: collect
	// tempWindow readings, drop the tempTrim highest and lowest, average
	// the rest.
	tempWindow = 70
	tempTrim   = 10
)
