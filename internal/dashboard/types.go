// types.go
package dashboard

import (
	"encoding/json"
	"html/template"

	"welldash/internal/well"
)

// Component ids shared by the page layout and the reactive graph.
const (
	SelectorID   = "well-selector-dropdown"
	ActiveWellID = "active-well"
	WellDataID   = "well-data-container"
	LogPlotID    = "log-plot"
	CrossPlotID  = "cross-plot"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// wellStatus is the debug text shown for the selected well.
type wellStatus struct {
	Name   string   `json:"name"`
	Curves []string `json:"curves"`
}

type updateRequest struct {
	Input string          `json:"input"`
	Value json.RawMessage `json:"value"`
}

type updateResponse struct {
	Outputs map[string]any    `json:"outputs"`
	Errors  map[string]string `json:"errors,omitempty"`
	Skipped []string          `json:"skipped,omitempty"`
}

type wellStats struct {
	Well   string            `json:"well"`
	Curves []well.CurveStats `json:"curves"`
}

type pageData struct {
	Title    string
	Subtitle string
	Options  []well.Option
	Initial  template.JS
	Stale    bool
}
