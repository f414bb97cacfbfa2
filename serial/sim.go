package serial

import (
	"math"
	"math/rand"
	"time"

	"vigil"
)

// simulator generates plausible vital signs at the board's sample rate:
// a sine-plus-noise ECG, normal-range SpO2, temperature and blood
// pressure. It stands in for the acquisition board in test mode.
type simulator struct {
	sink func(vigil.VitalSigns)
	stop chan struct{}
	done chan struct{}
}

func newSimulator(sink func(vigil.VitalSigns)) *simulator {
	return &simulator{
		sink: sink,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (s *simulator) start() {
	go s.loop()
}

func (s *simulator) loop() {
	defer close(s.done)

	ticker := time.NewTicker(simulatorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sink(generateSample(time.Now()))
		}
	}
}

func (s *simulator) halt() {
	close(s.stop)
	<-s.done
}

func generateSample(now time.Time) vigil.VitalSigns {
	t := float64(now.UnixMilli()) / 1000.0
	ecg := math.Sin(t*5.0)*500.0 + (rand.Float64()*100.0 - 50.0)

	return vigil.VitalSigns{
		ECG:       int(ecg),
		SpO2:      95 + rand.Intn(6),          // 95-100
		Temp:      360 + rand.Intn(16),        // 36.0-37.5 in tenths
		Systolic:  110 + rand.Intn(31),        // 110-140
		Diastolic: 70 + rand.Intn(21),         // 70-90
	}
}
