package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/textgap/internal/engine"
	"github.com/knowledge-engine/textgap/internal/politeness"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/analyze", s.handleAnalyze)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
	s.Router.HandleFunc("/health", s.handleHealth)
}

// Handler returns the router wrapped with request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.Router)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Requests

type AnalyzeRequest struct {
	Texts       []string `json:"texts"`
	URLs        []string `json:"urls"`
	TopN        *int     `json:"top_n"`
	GapBase     *int     `json:"gap_base"`
	GapTop      *int     `json:"gap_top"`
	GapMinDelta *float64 `json:"gap_min_delta"`
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Requests      int64  `json:"requests"`
	Documents     int64  `json:"documents"`
	FetchFailures int64  `json:"fetch_failures"`
	Uptime        string `json:"uptime"`
}

// Handlers

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Engine.Config.Server.MaxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req AnalyzeRequest
	if err := decoder.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonResponse(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return
		}
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON: " + err.Error()})
		return
	}

	if req.GapMinDelta != nil && *req.GapMinDelta < 0 {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "gap_min_delta must not be negative"})
		return
	}

	result, err := s.Engine.Analyze(r.Context(), engine.Request{
		Texts:       req.Texts,
		URLs:        req.URLs,
		TopN:        req.TopN,
		GapBase:     req.GapBase,
		GapTop:      req.GapTop,
		GapMinDelta: req.GapMinDelta,
	})
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, politeness.ErrInvalidURL) {
			code = http.StatusBadRequest
		}
		jsonResponse(w, code, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	stats := s.Engine.Stats()
	jsonResponse(w, http.StatusOK, StatusResponse{
		Requests:      stats.Requests,
		Documents:     stats.Documents,
		FetchFailures: stats.FetchFailures,
		Uptime:        time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
