// Package dashboard serves the well-log dashboard: the page layout, the
// reactive update endpoint and the export routes.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sync/atomic"

	"go.uber.org/zap"

	"welldash/internal/chart"
	"welldash/internal/config"
	"welldash/internal/reactive"
	"welldash/internal/well"
)

var ErrNoSelection = errors.New("no well selected")

// App is the request-handling context. Everything in it is read-only after
// New returns, except the stale flag set by the data watcher.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	project *well.Project
	graph   *reactive.Graph
	initial template.JS
	stale   atomic.Bool
}

// New wires the reactive graph and builds the start-up figures.
func New(cfg config.Config, logger *zap.Logger, project *well.Project) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, log: logger, project: project}
	g, err := a.buildGraph()
	if err != nil {
		return nil, err
	}
	a.graph = g
	initial, err := json.Marshal(a.initialFigures(context.Background()))
	if err != nil {
		return nil, fmt.Errorf("encode start-up figures: %w", err)
	}
	a.initial = template.JS(initial)
	return a, nil
}

// buildGraph declares the update rules. The derived table is the only input
// of both charts, so they always see the table for the current selection.
func (a *App) buildGraph() (*reactive.Graph, error) {
	g := reactive.New()
	if err := g.Source(SelectorID); err != nil {
		return nil, err
	}
	rules := []struct {
		id    string
		input string
		fn    reactive.Func
	}{
		{ActiveWellID, SelectorID, a.activeWell},
		{WellDataID, SelectorID, a.wellData},
		{LogPlotID, WellDataID, tableRule(chart.LogTracks)},
		{CrossPlotID, WellDataID, tableRule(chart.CrossPlot)},
	}
	for _, r := range rules {
		if err := g.Rule(r.id, []string{r.input}, r.fn); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (a *App) selectedWell(v any) (*well.Well, error) {
	i, ok := v.(int)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNoSelection, v)
	}
	return a.project.Well(i)
}

func (a *App) activeWell(_ context.Context, in []any) (any, error) {
	w, err := a.selectedWell(in[0])
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(wellStatus{Name: w.Name, Curves: w.CurveNames()})
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (a *App) wellData(_ context.Context, in []any) (any, error) {
	w, err := a.selectedWell(in[0])
	if err != nil {
		return nil, err
	}
	derived, err := well.Derive(w.Table())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.Name, err)
	}
	raw, err := json.Marshal(derived)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// tableRule decodes the serialized derived table and hands it to build.
func tableRule(build func(*well.Table) (*chart.Figure, error)) reactive.Func {
	return func(_ context.Context, in []any) (any, error) {
		s, ok := in[0].(string)
		if !ok {
			return nil, fmt.Errorf("derived table: unexpected %T", in[0])
		}
		var t well.Table
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("decode derived table: %w", err)
		}
		return build(&t)
	}
}

// initialFigures evaluates the graph for the configured start-up well.
// Failures fall back to empty charts.
func (a *App) initialFigures(ctx context.Context) map[string]*chart.Figure {
	figs := map[string]*chart.Figure{
		LogPlotID:   chart.EmptyLogTracks(),
		CrossPlotID: chart.EmptyCrossPlot(),
	}
	i := a.cfg.InitialWell
	if i < 0 || i >= a.project.Len() {
		return figs
	}
	up, err := a.graph.Evaluate(ctx, map[string]any{SelectorID: i}, nil)
	if err != nil {
		a.log.Warn("start-up figures", zap.Error(err))
		return figs
	}
	for id, err := range up.Errors {
		a.log.Warn("start-up figure failed", zap.String("node", id), zap.Int("well", i), zap.Error(err))
	}
	for id := range figs {
		if fig, ok := up.Values[id].(*chart.Figure); ok {
			figs[id] = fig
		}
	}
	return figs
}

// MarkStale records that well files changed on disk after start-up.
func (a *App) MarkStale() { a.stale.Store(true) }

// Stale reports whether the loaded project may be out of date.
func (a *App) Stale() bool { return a.stale.Load() }
