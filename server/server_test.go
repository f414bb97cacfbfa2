package server_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil"
	"vigil/mock"
	"vigil/server"
)

type vitalsStub struct {
	latest  []vigil.ProcessedVitals
	ecg     []vigil.Point
	stats   vigil.ECGStats
	metrics vigil.ProcessingMetrics
}

func (v *vitalsStub) Latest(n int) []vigil.ProcessedVitals {
	if n < len(v.latest) {
		return v.latest[:n]
	}
	return v.latest
}
func (v *vitalsStub) CompressedECG() []vigil.Point     { return v.ecg }
func (v *vitalsStub) Stats() vigil.ECGStats            { return v.stats }
func (v *vitalsStub) Metrics() vigil.ProcessingMetrics { return v.metrics }

type serialStub struct {
	status     vigil.SerialStatus
	connectErr error
	connected  vigil.SerialConfig
}

func (s *serialStub) Connect(cfg vigil.SerialConfig) error {
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = cfg
	s.status = vigil.SerialStatus{State: vigil.PortConnected, Port: cfg.PortName}
	return nil
}
func (s *serialStub) Disconnect() {
	s.status = vigil.SerialStatus{State: vigil.PortDisconnected}
}
func (s *serialStub) Status() vigil.SerialStatus { return s.status }

type patientStub struct {
	info    vigil.PatientInfo
	deleted bool
}

func (p *patientStub) Load() (vigil.PatientInfo, error) { return p.info, nil }
func (p *patientStub) Save(info vigil.PatientInfo) (vigil.PatientInfo, error) {
	info.ID = "fixed-id"
	p.info = info
	return info, nil
}
func (p *patientStub) Delete() error {
	p.deleted = true
	return nil
}

func newTestServer(t *testing.T, provider vigil.Provider) (*server.Server, *vitalsStub, *serialStub, *patientStub) {
	t.Helper()
	vs := &vitalsStub{
		latest: []vigil.ProcessedVitals{
			{ECGRaw: 2, HeartRate: 72},
			{ECGRaw: 1, HeartRate: 71},
		},
		ecg:   []vigil.Point{{X: 1, Y: 0.5}},
		stats: vigil.ECGStats{HeartRate: 72},
	}
	sc := &serialStub{status: vigil.SerialStatus{State: vigil.PortDisconnected}}
	ps := &patientStub{info: vigil.DefaultPatient()}
	srv := server.New(":0", vs, sc, ps, provider,
		server.WithLogger(slog.New(slog.DiscardHandler)))
	return srv, vs, sc, ps
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Vitals(t *testing.T) {
	t.Parallel()
	srv, _, _, _ := newTestServer(t, nil)

	t.Run("latest with count", func(t *testing.T) {
		t.Parallel()
		w := doJSON(t, srv.Handler(), http.MethodGet, "/api/vitals?count=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got []vigil.ProcessedVitals
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ECGRaw)
	})

	t.Run("invalid count rejected", func(t *testing.T) {
		t.Parallel()
		w := doJSON(t, srv.Handler(), http.MethodGet, "/api/vitals?count=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("ecg waveform", func(t *testing.T) {
		t.Parallel()
		w := doJSON(t, srv.Handler(), http.MethodGet, "/api/vitals/ecg", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got []vigil.Point
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 0.5, got[0].Y)
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()
		w := doJSON(t, srv.Handler(), http.MethodGet, "/api/vitals/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got vigil.ECGStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 72.0, got.HeartRate)
	})
}

func TestServer_Serial(t *testing.T) {
	t.Parallel()

	t.Run("connect then status", func(t *testing.T) {
		t.Parallel()
		srv, _, sc, _ := newTestServer(t, nil)

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/serial/connect",
			vigil.SerialConfig{PortName: "/dev/ttyUSB0", BaudRate: 115200})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/dev/ttyUSB0", sc.connected.PortName)

		w = doJSON(t, srv.Handler(), http.MethodGet, "/api/serial/status", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got vigil.SerialStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, vigil.PortConnected, got.State)
	})

	t.Run("connect failure is a gateway error", func(t *testing.T) {
		t.Parallel()
		srv, _, sc, _ := newTestServer(t, nil)
		sc.connectErr = assert.AnError

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/serial/connect",
			vigil.SerialConfig{PortName: "/dev/bogus"})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("disconnect", func(t *testing.T) {
		t.Parallel()
		srv, _, sc, _ := newTestServer(t, nil)
		sc.status = vigil.SerialStatus{State: vigil.PortConnected, Port: "COM1"}

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/serial/disconnect", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, vigil.PortDisconnected, sc.status.State)
	})
}

func TestServer_Patient(t *testing.T) {
	t.Parallel()

	t.Run("get returns the stored record", func(t *testing.T) {
		t.Parallel()
		srv, _, _, _ := newTestServer(t, nil)

		w := doJSON(t, srv.Handler(), http.MethodGet, "/api/patient", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got vigil.PatientInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "unset", got.Name)
	})

	t.Run("put saves and echoes the record", func(t *testing.T) {
		t.Parallel()
		srv, _, _, ps := newTestServer(t, nil)

		w := doJSON(t, srv.Handler(), http.MethodPut, "/api/patient",
			vigil.PatientInfo{Name: "Jane Roe", Age: 54})
		require.Equal(t, http.StatusOK, w.Code)

		var got vigil.PatientInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "fixed-id", got.ID)
		assert.Equal(t, "Jane Roe", ps.info.Name)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		srv, _, _, ps := newTestServer(t, nil)

		w := doJSON(t, srv.Handler(), http.MethodDelete, "/api/patient", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, ps.deleted)
	})
}

func TestServer_Chat(t *testing.T) {
	t.Parallel()

	t.Run("streams frame events and a done event", func(t *testing.T) {
		t.Parallel()
		provider := &mock.Provider{
			ChatFn: func(ctx context.Context, req vigil.ChatRequest) (vigil.Source, error) {
				return mock.DeltaSource("<think>hm", "m</think>", "Hello"), nil
			},
		}
		srv, _, _, _ := newTestServer(t, provider)

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/chat", vigil.ChatRequest{
			Messages: []vigil.ChatMessage{{Role: vigil.RoleUser, Content: "hi"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

		events, frames := parseSSE(t, w.Body.String())
		require.NotEmpty(t, frames)
		assert.Equal(t, "done", events[len(events)-1])

		last := frames[len(frames)-1]
		assert.Equal(t, "hmm", last.Reasoning)
		assert.Equal(t, "Hello", last.Visible)
	})

	t.Run("empty messages rejected", func(t *testing.T) {
		t.Parallel()
		srv, _, _, _ := newTestServer(t, &mock.Provider{})

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/chat", vigil.ChatRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider failure is a gateway error", func(t *testing.T) {
		t.Parallel()
		provider := &mock.Provider{
			ChatFn: func(ctx context.Context, req vigil.ChatRequest) (vigil.Source, error) {
				return nil, assert.AnError
			},
		}
		srv, _, _, _ := newTestServer(t, provider)

		w := doJSON(t, srv.Handler(), http.MethodPost, "/api/chat", vigil.ChatRequest{
			Messages: []vigil.ChatMessage{{Role: vigil.RoleUser, Content: "hi"}},
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

// parseSSE extracts event names and frame payloads from an SSE body.
func parseSSE(t *testing.T, body string) ([]string, []vigil.Frame) {
	t.Helper()
	var events []string
	var frames []vigil.Frame

	scanner := bufio.NewScanner(strings.NewReader(body))
	current := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current = strings.TrimPrefix(line, "event: ")
			events = append(events, current)
		case strings.HasPrefix(line, "data: "):
			if current == "frame" || current == "done" {
				var f vigil.Frame
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f))
				frames = append(frames, f)
			}
		}
	}
	return events, frames
}
