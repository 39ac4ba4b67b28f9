// handlers.go
package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"welldash/internal/chart"
	"welldash/internal/well"
)

const (
	MaxUpdateBody = 1 << 20 // 1MB

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Routes returns the dashboard's HTTP handler.
func (a *App) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.layoutHandler)
	mux.HandleFunc("POST /_update", a.updateHandler)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(staticFiles())))
	mux.HandleFunc("GET /api/health", a.healthHandler)
	mux.HandleFunc("GET /api/wells", a.wellsHandler)
	mux.HandleFunc("GET /api/wells/{index}/stats", a.statsHandler)
	mux.HandleFunc("GET /wells/{index}/export.xlsx", a.exportHandler)
	mux.HandleFunc("GET /wells/{index}/cross-plot.png", a.pngHandler(chart.RenderCrossPlotPNG))
	mux.HandleFunc("GET /wells/{index}/log-tracks.png", a.pngHandler(chart.RenderLogTracksPNG))
	return a.withRequestLog(mux)
}

func (a *App) layoutHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	page := pageData{
		Title:    pageTitle,
		Subtitle: pageSubtitle,
		Options:  a.project.Options(),
		Initial:  a.initial,
		Stale:    a.Stale(),
	}
	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, page); err != nil {
		a.log.Error("template error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// updateHandler runs every rule downstream of the changed input and returns
// their new values. Rule failures are reported per rule, not as HTTP errors.
func (a *App) updateHandler(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxUpdateBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Input != SelectorID {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: fmt.Sprintf("unknown input %q", req.Input)})
		return
	}
	var index *int
	if err := json.Unmarshal(req.Value, &index); err != nil || index == nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: ErrNoSelection.Error()})
		return
	}

	up, err := a.graph.Evaluate(r.Context(), map[string]any{SelectorID: *index}, nil)
	if err != nil {
		a.log.Error("update failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Error: err.Error()})
		return
	}
	resp := updateResponse{Outputs: up.Values, Skipped: up.Skipped}
	if len(up.Errors) > 0 {
		resp.Errors = make(map[string]string, len(up.Errors))
		for id, err := range up.Errors {
			resp.Errors[id] = err.Error()
			a.log.Warn("rule failed", zap.String("node", id), zap.Int("well", *index), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) exportHandler(w http.ResponseWriter, r *http.Request) {
	wl, derived, ok := a.derivedFromPath(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := well.WriteWorkbook(&buf, wl.Name, derived); err != nil {
		a.log.Error("export failed", zap.String("well", wl.Name), zap.Error(err))
		http.Error(w, "Failed to export well", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wl.Name+".xlsx"))
	_, _ = buf.WriteTo(w)
}

func (a *App) pngHandler(render func(io.Writer, *well.Table) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wl, derived, ok := a.derivedFromPath(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := render(&buf, derived); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, chart.ErrTooFewPoints) || errors.Is(err, well.ErrMissingColumn) {
				status = http.StatusUnprocessableEntity
			}
			a.log.Warn("render failed", zap.String("well", wl.Name), zap.Error(err))
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = buf.WriteTo(w)
	}
}

// derivedFromPath resolves {index} and derives the well's table, writing the
// error response itself when it fails.
func (a *App) derivedFromPath(w http.ResponseWriter, r *http.Request) (*well.Well, *well.Table, bool) {
	wl, ok := a.wellFromPath(w, r)
	if !ok {
		return nil, nil, false
	}
	derived, err := well.Derive(wl.Table())
	if err != nil {
		http.Error(w, fmt.Sprintf("%s: %v", wl.Name, err), http.StatusUnprocessableEntity)
		return nil, nil, false
	}
	return wl, derived, true
}

func (a *App) wellFromPath(w http.ResponseWriter, r *http.Request) (*well.Well, bool) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid well index", http.StatusBadRequest)
		return nil, false
	}
	wl, err := a.project.Well(i)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return wl, true
}
