package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vigil"
	"vigil/serial"
)

const defaultVitalsCount = 100

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVitals(w http.ResponseWriter, r *http.Request) {
	count := defaultVitalsCount
	if q := r.URL.Query().Get("count"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}
	respond(w, http.StatusOK, s.vitals.Latest(count))
}

func (s *Server) handleECG(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.vitals.CompressedECG())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.vitals.Stats())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.vitals.Metrics())
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	ports, err := serial.ListPorts()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ports == nil {
		ports = []vigil.PortInfo{}
	}
	respond(w, http.StatusOK, ports)
}

func (s *Server) handleSerialStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.serial.Status())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var cfg vigil.SerialConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.serial.Connect(cfg); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respond(w, http.StatusOK, s.serial.Status())
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.serial.Disconnect()
	respond(w, http.StatusOK, s.serial.Status())
}

func (s *Server) handlePatientGet(w http.ResponseWriter, r *http.Request) {
	info, err := s.patients.Load()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, info)
}

func (s *Server) handlePatientPut(w http.ResponseWriter, r *http.Request) {
	var info vigil.PatientInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := s.patients.Save(info)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handlePatientDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.patients.Delete(); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
