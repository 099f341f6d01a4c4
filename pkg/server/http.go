// Package server provides the HTTP API around the analyzer core.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jmylchreest/aide-complexity/pkg/analyzer"
)

// Server exposes the analyzer over HTTP.
type Server struct {
	addr string
	mux  *http.ServeMux
}

// NewServer creates a new HTTP server bound to addr.
func NewServer(addr string) *Server {
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/parse", s.handleParse)
	s.mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, "not found", http.StatusNotFound)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	fmt.Printf("aide-complexity server listening on %s\n", s.addr)
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

// MaxRequestBodySize limits request body size to 1MB.
const MaxRequestBodySize = 1 << 20 // 1MB

// limitRequestBody wraps the request body with a size limit.
func limitRequestBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
}

// Response helpers
func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("http: failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// parseRequest is the body of POST /parse.
type parseRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// parseResponse is the body of a successful POST /parse response.
type parseResponse struct {
	AST     *analyzer.AstDescriptor `json:"ast"`
	Summary *analyzer.Summary       `json:"summary"`
}

// handleParse runs the analyzer against the request body and returns the
// AST descriptor and summary.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limitRequestBody(w, r)
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if _, tooLarge := err.(*http.MaxBytesError); tooLarge {
			errorResponse(w, "invalid JSON or request too large", http.StatusBadRequest)
			return
		}
		errorResponse(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	ast, summary := analyzer.Analyze(req.Language, req.Code)
	jsonResponse(w, parseResponse{AST: ast, Summary: summary}, http.StatusOK)
}
