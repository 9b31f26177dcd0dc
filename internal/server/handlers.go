package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Board   board.Board      `json:"board"`
	Options pipeline.Options `json:"options"`
}

// boardLayoutRequest is the body of POST /v1/boards/{board}/layout.
type boardLayoutRequest struct {
	Tiles   []board.Tile     `json:"tiles"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse carries a layout and, when formats were requested, the
// rendered artifacts as strings.
type layoutResponse struct {
	Layout    board.Layout      `json:"layout"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// heightsRequest is the body of PUT /v1/boards/{board}/heights.
type heightsRequest struct {
	Heights map[string]float64 `json:"heights"`
}

type heightsResponse struct {
	Board   string             `json:"board"`
	Changed int                `json:"changed"`
	Heights map[string]float64 `json:"heights,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.layout(w, r, req.Board, req.Options)
}

func (s *Server) handleBoardLayout(w http.ResponseWriter, r *http.Request) {
	name, err := boardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req boardLayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.layout(w, r, board.Board{Name: name, Tiles: req.Tiles}, req.Options)
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request, b board.Board, reqOpts pipeline.Options) {
	opts := s.withDefaults(reqOpts)
	renderFormats := len(reqOpts.Formats) > 0

	// Laying out a named board may persist tile measurements.
	if b.Name != "" {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	ctx := r.Context()
	if !renderFormats {
		l, hit, err := s.runner.LayoutWithCacheInfo(ctx, b, opts)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, layoutResponse{Layout: l, Cached: hit})
		return
	}

	res, err := s.runner.Execute(ctx, b, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts := make(map[string]string, len(res.Artifacts))
	for f, data := range res.Artifacts {
		artifacts[f] = string(data)
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:    res.Layout,
		Artifacts: artifacts,
		Cached:    res.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleGetHeights(w http.ResponseWriter, r *http.Request) {
	name, err := boardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	heights, err := s.runner.LoadHeights(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make(map[string]float64, len(heights))
	for k, v := range heights {
		out[k.String()] = v
	}
	writeJSON(w, http.StatusOK, heightsResponse{Board: name, Heights: out})
}

func (s *Server) handlePutHeights(w http.ResponseWriter, r *http.Request) {
	name, err := boardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req heightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Heights) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "heights must not be empty"))
		return
	}

	s.mu.Lock()
	changed, err := s.runner.ReportHeights(r.Context(), name, req.Heights)
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, heightsResponse{Board: name, Changed: changed})
}

func (s *Server) handleDeleteHeights(w http.ResponseWriter, r *http.Request) {
	name, err := boardParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.mu.Lock()
	err = s.runner.ClearHeights(r.Context(), name)
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func boardParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "board")
	if err := errors.ValidateBoardName(name); err != nil {
		return "", err
	}
	return name, nil
}

// withDefaults fills unset request options from the server defaults. The
// server's column mode applies only when the request picks none of its own:
// a request that sets column_width asks for auto mode.
func (s *Server) withDefaults(o pipeline.Options) pipeline.Options {
	d := s.defaults
	ownMode := o.Columns != 0 || len(o.Breakpoints) > 0 || o.ColumnWidth != 0
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Gap == nil {
		o.Gap = d.Gap
	}
	if o.ColumnWidth == 0 {
		o.ColumnWidth = d.ColumnWidth
	}
	if !ownMode {
		o.Columns = d.Columns
		o.Breakpoints = d.Breakpoints
		o.BreakpointDefault = d.BreakpointDefault
	}
	if o.Placeholder == 0 {
		o.Placeholder = d.Placeholder
	}
	if len(o.Formats) > 0 {
		o.Formats = o.SortedFormats()
	}
	o.Logger = s.logger
	return o
}
