package serial

import (
	"fmt"
	"log/slog"
	"sync"

	goserial "go.bug.st/serial"

	"vigil"
)

// Manager owns the acquisition lifecycle: which source is active (real
// port or simulator), the ring of recent raw samples, and the channel
// feeding the processing pipeline.
type Manager struct {
	mu       sync.Mutex
	reader   *reader
	sim      *simulator
	status   vigil.SerialStatus
	simulate bool

	ring    *ring
	samples chan vigil.VitalSigns
	logger  *slog.Logger
}

// ManagerOption configures a [Manager].
type ManagerOption func(*Manager)

// WithLogger sets the logger for read-loop diagnostics.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a disconnected Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		status:  vigil.SerialStatus{State: vigil.PortDisconnected},
		ring:    newRing(ringCapacity),
		samples: make(chan vigil.VitalSigns, 256),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ListPorts enumerates the serial ports present on the system.
func ListPorts() ([]vigil.PortInfo, error) {
	names, err := goserial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial: list ports: %w", err)
	}
	ports := make([]vigil.PortInfo, len(names))
	for i, name := range names {
		ports[i] = vigil.PortInfo{Name: name, Description: "serial device"}
	}
	return ports, nil
}

// TestConnection opens the port without starting acquisition.
func (m *Manager) TestConnection(cfg vigil.SerialConfig) error {
	port, err := openPort(cfg)
	if err != nil {
		return err
	}
	return port.Close()
}

// SetSimulated switches between the real board and the simulator. Takes
// effect on the next Connect.
func (m *Manager) SetSimulated(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulate = on
}

// Simulated reports whether the simulator is the active source type.
func (m *Manager) Simulated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.simulate
}

// Connect starts acquisition from the configured source, disconnecting
// any previous one first.
func (m *Manager) Connect(cfg vigil.SerialConfig) error {
	m.Disconnect()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.simulate {
		m.sim = newSimulator(m.push)
		m.sim.start()
		m.status = vigil.SerialStatus{State: vigil.PortConnected, Port: "SIMULATED"}
		m.logger.Info("acquisition started", "source", "simulator")
		return nil
	}

	port, err := openPort(cfg)
	if err != nil {
		m.status = vigil.SerialStatus{State: vigil.PortError, Error: err.Error()}
		return err
	}
	m.reader = newReader(port, m.push, m.logger)
	m.reader.start()
	m.status = vigil.SerialStatus{State: vigil.PortConnected, Port: cfg.PortName}
	m.logger.Info("acquisition started", "source", "serial", "port", cfg.PortName, "baud", cfg.BaudRate)
	return nil
}

// Disconnect stops the active source, if any.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reader != nil {
		m.reader.stop()
		m.reader = nil
	}
	if m.sim != nil {
		m.sim.halt()
		m.sim = nil
	}
	m.status = vigil.SerialStatus{State: vigil.PortDisconnected}
}

// Send writes a command string to the board.
func (m *Manager) Send(data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reader == nil {
		return vigil.ErrNotConnected
	}
	if err := m.reader.send(data); err != nil {
		return fmt.Errorf("serial: send: %w", err)
	}
	return nil
}

// Status returns the current connection status.
func (m *Manager) Status() vigil.SerialStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Latest returns up to n raw samples, newest first.
func (m *Manager) Latest(n int) []vigil.VitalSigns {
	return m.ring.latest(n)
}

// Samples is the feed consumed by the processing pipeline. Samples are
// dropped, not blocked on, when the consumer falls behind.
func (m *Manager) Samples() <-chan vigil.VitalSigns {
	return m.samples
}

func (m *Manager) push(vs vigil.VitalSigns) {
	m.ring.add(vs)
	select {
	case m.samples <- vs:
	default:
	}
}

func openPort(cfg vigil.SerialConfig) (goserial.Port, error) {
	mode := &goserial.Mode{BaudRate: cfg.BaudRate}
	port, err := goserial.Open(cfg.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.PortName, err)
	}
	return port, nil
}
