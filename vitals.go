package vigil

// VitalSigns is one raw sample as delivered by the acquisition board.
// ECG is the raw ADC reading, Temp is tenths of a degree Celsius.
type VitalSigns struct {
	ECG       int `json:"ecg"`
	SpO2      int `json:"spo2"`
	Temp      int `json:"temp"`
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Point is a single point of a downsampled waveform. X is a millisecond
// timestamp, Y the normalized ECG value in [-1, 1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProcessedVitals is one sample after the processing pipeline: calibrated
// temperature, validated SpO2, normalized ECG and the derived cardiac
// measures.
type ProcessedVitals struct {
	ECGRaw          int     `json:"ecg_raw"`
	ECGNormalized   float64 `json:"ecg_normalized"`
	BodyTemperature float64 `json:"body_temperature"`
	BloodOxygen     int     `json:"blood_oxygen"`
	HeartRate       float64 `json:"heart_rate"`
	RRInterval      float64 `json:"rr_interval"`
	Systolic        int     `json:"systolic"`
	Diastolic       int     `json:"diastolic"`
	Timestamp       int64   `json:"timestamp"`
}

// ECGStats summarizes the cardiac state derived from the ECG channel.
type ECGStats struct {
	HeartRate             float64 `json:"heart_rate"`
	RRVariability         float64 `json:"rr_variability"`
	CompressionEfficiency float64 `json:"compression_efficiency"`
}

// ProcessingMetrics reports pipeline throughput for the dashboard.
type ProcessingMetrics struct {
	ProcessingRate   float64 `json:"processing_rate"` // samples per second
	QueueLength      int     `json:"queue_length"`
	CompressionRatio float64 `json:"compression_ratio"` // percent size reduction
}

// SerialConfig selects the acquisition port.
type SerialConfig struct {
	PortName string `json:"port_name"` // e.g. "COM1" or "/dev/ttyUSB0"
	BaudRate int    `json:"baud_rate"`
}

// PortState enumerates the acquisition connection states.
type PortState string

const (
	PortDisconnected PortState = "disconnected"
	PortConnected    PortState = "connected"
	PortError        PortState = "error"
)

// SerialStatus reports the current acquisition connection.
type SerialStatus struct {
	State PortState `json:"state"`
	Port  string    `json:"port,omitempty"`   // set when connected
	Error string    `json:"error,omitempty"`  // set on error
}

// PortInfo describes one available serial port.
type PortInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
