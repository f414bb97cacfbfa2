package vitals

import (
	"log/slog"
	"sync"
	"time"

	"vigil"
)

// Processor drains the acquisition feed in a background goroutine and
// runs every sample through the processing pipeline. Processed samples
// are kept in a bounded history, newest last.
type Processor struct {
	samples <-chan vigil.VitalSigns
	logger  *slog.Logger

	mu      sync.Mutex
	history []vigil.ProcessedVitals
	heart   *heartMonitor
	wave    *waveform
	temp    *tempFilter
	total   uint64
	started time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// ProcessorOption configures a [Processor].
type ProcessorOption func(*Processor)

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a Processor reading from samples. Call Start to
// begin processing.
func NewProcessor(samples <-chan vigil.VitalSigns, opts ...ProcessorOption) *Processor {
	p := &Processor{
		samples: samples,
		logger:  slog.Default(),
		history: make([]vigil.ProcessedVitals, 0, historyCapacity),
		heart:   newHeartMonitor(),
		wave:    newWaveform(),
		temp:    newTempFilter(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start launches the processing goroutine.
func (p *Processor) Start() {
	p.mu.Lock()
	p.started = time.Now()
	p.mu.Unlock()
	go p.loop()
}

// Stop ends processing and waits for the goroutine to exit. Safe to
// call more than once.
func (p *Processor) Stop() {
	p.once.Do(func() { close(p.stop) })
	<-p.done
}

func (p *Processor) loop() {
	defer close(p.done)

	p.logger.Info("vitals pipeline started")
	for {
		select {
		case <-p.stop:
			p.logger.Info("vitals pipeline stopped")
			return
		case vs := <-p.samples:
			p.process(vs)
		}
	}
}

func (p *Processor) process(vs vigil.VitalSigns) {
	now := time.Now().UnixMilli()

	p.mu.Lock()
	defer p.mu.Unlock()

	hr, rr := p.heart.observe(vs.ECG)
	normalized := p.wave.observe(vs.ECG, now)

	processed := vigil.ProcessedVitals{
		ECGRaw:          vs.ECG,
		ECGNormalized:   normalized,
		BodyTemperature: p.temp.observe(vs.Temp),
		BloodOxygen:     validSpO2(vs.SpO2),
		HeartRate:       hr,
		RRInterval:      rr,
		Systolic:        vs.Systolic,
		Diastolic:       vs.Diastolic,
		Timestamp:       now,
	}

	if len(p.history) >= historyCapacity {
		p.history = p.history[1:]
	}
	p.history = append(p.history, processed)
	p.total++
}

// Latest returns up to n processed samples, newest first.
func (p *Processor) Latest(n int) []vigil.ProcessedVitals {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.history) {
		n = len(p.history)
	}
	out := make([]vigil.ProcessedVitals, n)
	for i := 0; i < n; i++ {
		out[i] = p.history[len(p.history)-1-i]
	}
	return out
}

// CompressedECG returns the downsampled waveform from the last
// compression pass.
func (p *Processor) CompressedECG() []vigil.Point {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]vigil.Point, len(p.wave.compressed))
	copy(out, p.wave.compressed)
	return out
}

// Stats summarizes the derived cardiac state.
func (p *Processor) Stats() vigil.ECGStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	efficiency := 1.0
	if len(p.wave.compressed) > 0 {
		efficiency = float64(len(p.wave.raw)) / float64(len(p.wave.compressed))
	}
	return vigil.ECGStats{
		HeartRate:             p.heart.heartRate,
		RRVariability:         p.heart.rrInterval,
		CompressionEfficiency: efficiency,
	}
}

// Metrics reports pipeline throughput.
func (p *Processor) Metrics() vigil.ProcessingMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()

	var rate float64
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.total) / elapsed
	}

	var reduction float64
	if len(p.wave.compressed) > 0 && len(p.wave.raw) > 0 {
		reduction = (1.0 - float64(len(p.wave.compressed))/float64(len(p.wave.raw))) * 100.0
	}

	return vigil.ProcessingMetrics{
		ProcessingRate:   rate,
		QueueLength:      len(p.history),
		CompressionRatio: reduction,
	}
}
