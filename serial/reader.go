package serial

import (
	"bufio"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"vigil"
)

// reader runs the blocking read loop over an open port. It stops on
// request, on EOF, or after too many consecutive read failures.
type reader struct {
	port    io.ReadWriteCloser
	sink    func(vigil.VitalSigns)
	logger  *slog.Logger
	stopped atomic.Bool
	done    chan struct{}
}

func newReader(port io.ReadWriteCloser, sink func(vigil.VitalSigns), logger *slog.Logger) *reader {
	return &reader{
		port:   port,
		sink:   sink,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (r *reader) start() {
	go r.loop()
}

func (r *reader) loop() {
	defer close(r.done)

	br := bufio.NewReader(r.port)
	consecutiveErrors := 0
	for !r.stopped.Load() {
		line, err := br.ReadString('\n')
		if err == io.EOF {
			return
		}
		if err != nil {
			if r.stopped.Load() {
				return
			}
			consecutiveErrors++
			r.logger.Warn("serial read failed", "error", err, "consecutive", consecutiveErrors)
			if consecutiveErrors >= maxConsecutiveErrors {
				r.logger.Error("giving up after repeated serial read failures")
				return
			}
			time.Sleep(errorBackoff)
			continue
		}
		consecutiveErrors = 0

		if vs, ok := parseLine(line); ok {
			r.sink(vs)
		}
	}
}

// stop ends the loop and waits for it to exit. Closing the port unblocks
// a read in flight.
func (r *reader) stop() {
	r.stopped.Store(true)
	r.port.Close()
	<-r.done
}

func (r *reader) send(data string) error {
	_, err := r.port.Write([]byte(data))
	return err
}
