// Package server is the HTTP query facade over the tracking
// registry. It adds no logic of its own beyond filter validation; it
// reads and deletes through the Registry interface.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/t7a/ambry"
	"github.com/t7a/ambry/tracking"
)

// Server serves GET and DELETE /extraction.
type Server struct {
	Registry tracking.Registry
}

func New(registry tracking.Registry) *Server {
	return &Server{Registry: registry}
}

// Router returns the configured mux router; exposed so tests can
// drive it through httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/extraction", s.getExtraction).Methods(http.MethodGet)
	r.HandleFunc("/extraction", s.deleteExtraction).Methods(http.MethodDelete)
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	log.Infof("serving extraction queries on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

type getExtractionResponse struct {
	Extractions []ambry.Extraction `json:"extractions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// getExtraction lists tracked extractions, optionally filtered by
// the path or type query parameter. Path takes precedence when both
// are present.
func (s *Server) getExtraction(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	var extractions []ambry.Extraction
	var err error

	switch {
	case q.Get("path") != "":
		var x *ambry.Extraction
		x, err = s.Registry.GetByPath(q.Get("path"))
		if x != nil {
			extractions = append(extractions, *x)
		}
	case q.Get("type") != "":
		var t ambry.ExtractionType
		t, err = ambry.ParseExtractionType(q.Get("type"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		extractions, err = s.Registry.GetByType(t)
	default:
		extractions, err = s.Registry.List()
	}

	if err != nil {
		log.Errorf("failed querying registry: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry query failed"})
		return
	}

	if extractions == nil {
		extractions = []ambry.Extraction{}
	}
	writeJSON(w, http.StatusOK, getExtractionResponse{Extractions: extractions})
}

// deleteExtraction removes tracking for the path given in the
// required path query parameter.
func (s *Server) deleteExtraction(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path parameter is required"})
		return
	}

	x, err := s.Registry.GetByPath(path)
	if err != nil {
		log.Errorf("failed querying registry: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry query failed"})
		return
	}
	if x == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "path not tracked: " + path})
		return
	}

	err = s.Registry.Remove(*x)
	if err != nil {
		log.Errorf("failed removing tracking for %s: %v", path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry delete failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Errorf("failed writing response: %v", err)
	}
}
