package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mediflow/mediflow-sim/sim"
	"github.com/mediflow/mediflow-sim/sim/sweep"
	"github.com/mediflow/mediflow-sim/store"
)

// defaultSeed keeps API runs reproducible unless the caller asks otherwise.
const defaultSeed int64 = 42

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware, loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("", s.apiInfo).Methods(http.MethodGet)
	api.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/simulate", s.simulate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sweep", s.runSweep).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/results", s.listResults).Methods(http.MethodGet)
	api.HandleFunc("/results/{id}", s.getResult).Methods(http.MethodGet)
}

// simulateRequest mirrors the JSON body of POST /api/simulate. Pointers tell
// a missing field apart from a zero value.
type simulateRequest struct {
	ArrivalRate *float64 `json:"arrival_rate"`
	ServiceRate *float64 `json:"service_rate"`
	Servers     *float64 `json:"servers"`
	Hours       *float64 `json:"hours"`
	Seed        *int64   `json:"seed"`
	Export      *bool    `json:"export"`
}

type sweepRequest struct {
	ArrivalRate *float64 `json:"arrival_rate"`
	ServiceRate *float64 `json:"service_rate"`
	Hours       *float64 `json:"hours"`
	MinServers  *float64 `json:"min_servers"`
	MaxServers  *float64 `json:"max_servers"`
	Workers     int      `json:"workers"`
	Seed        *int64   `json:"seed"`
	Export      *bool    `json:"export"`
}

// requestError is a client error reported as 400.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func missingField(name string) error {
	return &requestError{msg: "Missing required field: " + name}
}

// wholeNumber converts a JSON number that must be a positive-or-zero integer count.
func wholeNumber(name string, v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, &requestError{msg: fmt.Sprintf("Invalid parameter: %s must be a whole number, got %v", name, v)}
	}
	return int(v), nil
}

func (req simulateRequest) params() (sim.SimulationParameters, error) {
	var p sim.SimulationParameters
	switch {
	case req.ArrivalRate == nil:
		return p, missingField("arrival_rate")
	case req.ServiceRate == nil:
		return p, missingField("service_rate")
	case req.Servers == nil:
		return p, missingField("servers")
	case req.Hours == nil:
		return p, missingField("hours")
	}
	servers, err := wholeNumber("servers", *req.Servers)
	if err != nil {
		return p, err
	}
	seed := defaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	return sim.NewSimulationParameters(*req.ArrivalRate, *req.ServiceRate, servers, *req.Hours, seed), nil
}

func (req sweepRequest) params() (sim.SimulationParameters, sim.SweepRange, error) {
	var (
		p sim.SimulationParameters
		r sim.SweepRange
	)
	switch {
	case req.ArrivalRate == nil:
		return p, r, missingField("arrival_rate")
	case req.ServiceRate == nil:
		return p, r, missingField("service_rate")
	case req.Hours == nil:
		return p, r, missingField("hours")
	case req.MinServers == nil:
		return p, r, missingField("min_servers")
	case req.MaxServers == nil:
		return p, r, missingField("max_servers")
	}
	minServers, err := wholeNumber("min_servers", *req.MinServers)
	if err != nil {
		return p, r, err
	}
	maxServers, err := wholeNumber("max_servers", *req.MaxServers)
	if err != nil {
		return p, r, err
	}
	seed := defaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	p = sim.NewSimulationParameters(*req.ArrivalRate, *req.ServiceRate, max(minServers, 1), *req.Hours, seed)
	r = sim.SweepRange{MinServers: minServers, MaxServers: maxServers, Workers: req.Workers}
	return p, r, nil
}

func (s *Server) apiInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "MediFlow API",
		"version": Version,
		"endpoints": map[string]string{
			"simulate":     "/api/simulate",
			"sweep":        "/api/sweep",
			"results":      "/api/results/{export_id}",
			"results_list": "/api/results",
			"health":       "/api/health",
		},
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.timestamp(),
	})
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	params, err := req.params()
	if err == nil {
		err = s.checkRunSize(params)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.Infof("Running simulation: λ=%v, μ=%v, c=%d, T=%v", params.ArrivalRate, params.ServiceRate, params.Servers, params.Duration)
	result, err := sim.RunSimulation(params)
	if err != nil {
		writeError(w, err)
		return
	}

	exportID, err := s.export(req.Export, store.KindSimulation, result)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"results":   result,
		"export_id": exportID,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) runSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	params, rng, err := req.params()
	if err == nil {
		err = s.checkRunSize(params)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := sweep.Run(r.Context(), params, rng)
	if err != nil {
		writeError(w, err)
		return
	}

	exportID, err := s.export(req.Export, store.KindSweep, report)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"results":   report,
		"export_id": exportID,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(entries),
		"files": entries,
	})
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Raw(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// checkRunSize rejects runs whose expected number of arrivals exceeds the configured limit.
func (s *Server) checkRunSize(p sim.SimulationParameters) error {
	if expected := p.ArrivalRate * p.Duration; expected > s.config.MaxArrivals {
		return &requestError{msg: fmt.Sprintf(
			"Request too large: arrival_rate × hours = %.0f expected arrivals exceeds the limit of %.0f", expected, s.config.MaxArrivals)}
	}
	return nil
}

// export saves v unless the caller opted out; a nil ID means nothing was saved.
func (s *Server) export(flag *bool, kind string, v any) (*string, error) {
	if flag != nil && !*flag {
		return nil, nil
	}
	id, err := s.store.Save(kind, v)
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", kind, err)
	}
	return &id, nil
}

func (s *Server) timestamp() string {
	return s.now().Format(time.RFC3339)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &requestError{msg: "Invalid request body: " + err.Error()}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Encoding response: %v", err)
	}
}

// writeError maps err onto a status code and a {"error": ...} body.
func writeError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case errors.Is(err, sim.ErrInvalidParameter):
		status = http.StatusBadRequest
		msg = "Invalid parameter: " + msg
	case errors.Is(err, store.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		msg = "Results not found"
	default:
		logrus.Errorf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
