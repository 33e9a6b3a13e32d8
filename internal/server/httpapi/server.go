// Package httpapi exposes the vaultd object store over HTTP. The contract
// mirrors the client-side remote.Store: conditional writes keyed on opaque
// version tokens, create-only POST, 409 on any lost race.
package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/auth"
	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/server/repositories/objects"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Server struct {
	router *mux.Router
	repo   objects.Repository
	secret []byte
	log    logging.Logger
}

func NewServer(repo objects.Repository, secretKey string, log logging.Logger) *Server {
	s := &Server{
		repo:   repo,
		secret: []byte(secretKey),
		log:    log.With("component", "httpapi"),
	}

	r := mux.NewRouter()
	r.Use(s.authMiddleware)

	api := r.PathPrefix("/api/objects").Subrouter()
	api.HandleFunc("/{path:.*}", s.getObject).Methods(http.MethodGet)
	api.HandleFunc("/{path:.*}", s.createObject).Methods(http.MethodPost)
	api.HandleFunc("/{path:.*}", s.updateObject).Methods(http.MethodPut)

	s.router = r
	return s
}

// Handler returns the routable handler, usable directly by httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

type objectResponse struct {
	Path    string `json:"path"`
	Data    string `json:"data"` // base64
	Version string `json:"version"`
}

type writeRequest struct {
	Data    string `json:"data"` // base64
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

type writeResponse struct {
	Version string `json:"version"`
}

// authMiddleware requires a bearer token minted from the shared secret.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		clientID, err := auth.VerifyToken(token, s.secret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method, "uri", r.RequestURI,
			"client_id", clientID, "duration", time.Since(start).String())
	})
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	obj, err := s.repo.Get(r.Context(), path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, objectResponse{
		Path:    obj.Path,
		Data:    base64.StdEncoding.EncodeToString(obj.Data),
		Version: obj.Version,
	})
}

func (s *Server) createObject(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	req, data, ok := s.readWriteRequest(w, r)
	if !ok {
		return
	}

	version := uuid.NewString()
	err := s.repo.Create(r.Context(), &objects.Object{
		Path:    path,
		Data:    data,
		Version: version,
		Message: req.Message,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, writeResponse{Version: version})
}

func (s *Server) updateObject(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	req, data, ok := s.readWriteRequest(w, r)
	if !ok {
		return
	}
	if req.Version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	version := uuid.NewString()
	if err := s.repo.Update(r.Context(), path, data, req.Version, version, req.Message); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, writeResponse{Version: version})
}

func (s *Server) readWriteRequest(w http.ResponseWriter, r *http.Request) (*writeRequest, []byte, bool) {
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return nil, nil, false
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		http.Error(w, "data is not valid base64", http.StatusBadRequest)
		return nil, nil, false
	}
	return &req, data, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrAlreadyExists):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, common.ErrVersionConflict):
		http.Error(w, "version mismatch", http.StatusConflict)
	default:
		s.log.Error(r.Context(), "request failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
