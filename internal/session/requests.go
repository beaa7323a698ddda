package session

import (
	"github.com/computeruseprotocol/go-sdk/internal/format"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
	"github.com/computeruseprotocol/go-sdk/internal/search"
)

// OutputOptions controls compact text rendering for a snapshot.
type OutputOptions struct {
	Compact  bool
	MaxChars int
}

// SnapshotRequest selects what to capture and how to transform it.
type SnapshotRequest struct {
	Scope     string // overview | foreground | desktop | full
	AppFilter string // substring match on window title / app name
	MaxDepth  int    // 0 = unlimited
	Detail    string // minimal | standard | full
	Output    OutputOptions
}

func (r *SnapshotRequest) withDefaults() SnapshotRequest {
	out := *r
	if out.Scope == "" {
		out.Scope = model.ScopeForeground
	}
	if out.Detail == "" {
		out.Detail = model.DetailStandard
	}
	if out.Output.MaxChars == 0 {
		out.Output.MaxChars = format.DefaultMaxChars
	}
	return out
}

// SnapshotResult is the output of one capture.
type SnapshotResult struct {
	Envelope *model.Envelope // pruned tree per the requested detail
	Full     *model.Envelope // unpruned tree
	Compact  string          // rendered compact text (when requested)
	Stats    *platform.CaptureStats
}

// FindRequest is a semantic search over the last unpruned tree.
type FindRequest = search.Request

// ExecuteRequest is one dispatched action.
type ExecuteRequest struct {
	ElementID string
	Action    string
	Params    ActionParams
}

// ActionParams carries per-action payload. Value serves type/setvalue,
// Direction serves scroll, Keys serves press_keys.
type ActionParams struct {
	Value     string
	Direction string
	Amount    int
	Keys      string
}

// ActionResult reports one dispatched action. Failures are reported
// here, not raised.
type ActionResult struct {
	Success bool   `yaml:"success"            json:"success"`
	Message string `yaml:"message,omitempty"  json:"message,omitempty"`
	Error   string `yaml:"error,omitempty"    json:"error,omitempty"`
}

// BatchStep is one entry in a batch execution: a wait, a key press, or
// an element action.
type BatchStep struct {
	Action    string `yaml:"action"               json:"action"`
	Ms        int    `yaml:"ms,omitempty"         json:"ms,omitempty"`
	Keys      string `yaml:"keys,omitempty"       json:"keys,omitempty"`
	ElementID string `yaml:"element_id,omitempty" json:"element_id,omitempty"`
	Value     string `yaml:"value,omitempty"      json:"value,omitempty"`
	Direction string `yaml:"direction,omitempty"  json:"direction,omitempty"`
	Amount    int    `yaml:"amount,omitempty"     json:"amount,omitempty"`
}
