// Package server hosts the local HTTP API over a loaded seafloor
// dataset: free-text queries, per-cell scores, routes, and heatmaps.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rayanamir1/AbyssGPT/pkg/engine"
	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/query"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

// Server is the local API server for interactive exploration.
type Server struct {
	eng    *engine.Engine
	repo   grid.Repository
	port   int
	logger *zap.Logger
}

// New creates a server around a query engine.
func New(eng *engine.Engine, repo grid.Repository, port int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{eng: eng, repo: repo, port: port, logger: logger}
}

// Handler builds the route mux. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/score", s.handleScore)
	mux.HandleFunc("GET /api/route", s.handleRoute)
	mux.HandleFunc("GET /api/heatmap", s.handleHeatmap)
	mux.HandleFunc("GET /api/bounds", s.handleBounds)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start launches the HTTP server and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("abyssgpt server starting",
		zap.String("addr", fmt.Sprintf("http://localhost%s", addr)))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>AbyssGPT</title></head>
<body style="margin:0;background:#02131f;color:#cfe8ff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>AbyssGPT</h1>
<p>Seafloor query API. POST /api/query with {"text": "safest route from (0,0) to (5,5)"}.</p>
</div>
</body></html>`)
}

type queryBody struct {
	Text string `json:"text"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body queryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		httpError(w, http.StatusBadRequest, "body must be JSON with a non-empty \"text\" field")
		return
	}
	resp := s.eng.Handle(r.Context(), body.Text)
	s.logger.Info("query handled",
		zap.String("type", string(resp.Type)),
		zap.String("profile", string(resp.Profile)))
	writeJSON(w, resp)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	c, ok := coordParam(r, "row", "col")
	if !ok {
		httpError(w, http.StatusBadRequest, "row and col query parameters are required integers")
		return
	}
	resp := s.eng.HandleRequest(r.Context(), query.Request{
		Type:    query.TypeExplain,
		Profile: profileParam(r),
		Coords:  []grid.Coordinate{c},
	})
	writeJSON(w, resp)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	from, ok1 := coordParam(r, "from_row", "from_col")
	to, ok2 := coordParam(r, "to_row", "to_col")
	if !ok1 || !ok2 {
		httpError(w, http.StatusBadRequest, "from_row/from_col/to_row/to_col query parameters are required integers")
		return
	}
	resp := s.eng.HandleRequest(r.Context(), query.Request{
		Type:    query.TypeRoute,
		Profile: profileParam(r),
		Coords:  []grid.Coordinate{from, to},
	})
	writeJSON(w, resp)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	typ := query.TypeMining
	if profileParam(r) == score.Conservation {
		typ = query.TypeConservation
	}
	resp := s.eng.HandleRequest(r.Context(), query.Request{
		Type:    typ,
		Profile: profileParam(r),
	})
	writeJSON(w, resp)
}

func (s *Server) handleBounds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.repo.Bounds())
}

func profileParam(r *http.Request) score.Profile {
	return score.ParseProfile(r.URL.Query().Get("profile"))
}

func coordParam(r *http.Request, rowKey, colKey string) (grid.Coordinate, bool) {
	row, err1 := strconv.Atoi(r.URL.Query().Get(rowKey))
	col, err2 := strconv.Atoi(r.URL.Query().Get(colKey))
	if err1 != nil || err2 != nil {
		return grid.Coordinate{}, false
	}
	return grid.Coordinate{Row: row, Col: col}, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
