package session

import (
	"context"
	"fmt"
	"time"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/platform"
)

// Wait clamp bounds for batch wait steps, in milliseconds.
const (
	minWaitMs = 50
	maxWaitMs = 5000
)

var validDirections = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
}

// Execute validates and dispatches one action. It never panics or
// returns a Go error for action-level failures; the result record
// carries success or a human-readable error.
func (s *Session) Execute(ctx context.Context, req ExecuteRequest) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeLocked(ctx, req)
}

func (s *Session) executeLocked(ctx context.Context, req ExecuteRequest) ActionResult {
	if !model.ValidAction(req.Action) {
		return fail("Unknown action %q", req.Action)
	}

	if req.Action == model.ActionPressKeys {
		if req.Params.Keys == "" {
			return fail("press_keys requires keys")
		}
		modifiers, keys := ParseCombo(req.Params.Keys)
		if len(keys) == 0 {
			return fail("press_keys: no keys in combo %q", req.Params.Keys)
		}
		if err := s.adapter.PressKeys(ctx, modifiers, keys); err != nil {
			return ActionResult{Success: false, Error: err.Error()}
		}
		return ok("Pressed %s", req.Params.Keys)
	}

	if req.ElementID == "" {
		return fail("action %q requires an element_id", req.Action)
	}
	ref, known := s.refs[req.ElementID]
	if !known {
		return fail("Element %s not found in the current snapshot", req.ElementID)
	}

	switch req.Action {
	case model.ActionType, model.ActionSetValue:
		if req.Params.Value == "" {
			return fail("action %q requires a value", req.Action)
		}
	case model.ActionScroll:
		if !validDirections[req.Params.Direction] {
			return fail("scroll requires a direction: up, down, left, or right")
		}
	}

	if err := s.adapter.Perform(ctx, ref, req.Action, platformParams(req.Params)); err != nil {
		return ActionResult{Success: false, Error: err.Error()}
	}
	return ok("%s", successMessage(req.Action, req.Params))
}

// ExecuteBatch runs steps in order and stops at the first failure,
// returning the results up to and including it.
func (s *Session) ExecuteBatch(ctx context.Context, steps []BatchStep) []ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]ActionResult, 0, len(steps))
	for _, step := range steps {
		var res ActionResult
		if step.Action == "wait" {
			res = waitStep(ctx, step.Ms)
		} else {
			res = s.executeLocked(ctx, ExecuteRequest{
				ElementID: step.ElementID,
				Action:    step.Action,
				Params: ActionParams{
					Value:     step.Value,
					Direction: step.Direction,
					Amount:    step.Amount,
					Keys:      step.Keys,
				},
			})
		}
		results = append(results, res)
		if !res.Success {
			break
		}
	}
	return results
}

func waitStep(ctx context.Context, ms int) ActionResult {
	if ms < minWaitMs {
		ms = minWaitMs
	}
	if ms > maxWaitMs {
		ms = maxWaitMs
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return ok("Waited %dms", ms)
	case <-ctx.Done():
		return ActionResult{Success: false, Error: ctx.Err().Error()}
	}
}

func successMessage(action string, params ActionParams) string {
	switch action {
	case model.ActionClick:
		return "Clicked"
	case model.ActionDoubleClick:
		return "Double-clicked"
	case model.ActionRightClick:
		return "Right-clicked"
	case model.ActionLongPress:
		return "Long-pressed"
	case model.ActionType:
		return "Typed: " + params.Value
	case model.ActionSetValue:
		return "Set value: " + params.Value
	case model.ActionScroll:
		return "Scrolled " + params.Direction
	case model.ActionToggle:
		return "Toggled"
	case model.ActionExpand:
		return "Expanded"
	case model.ActionCollapse:
		return "Collapsed"
	case model.ActionSelect:
		return "Selected"
	case model.ActionFocus:
		return "Focused"
	case model.ActionIncrement:
		return "Incremented"
	case model.ActionDecrement:
		return "Decremented"
	case model.ActionDismiss:
		return "Dismissed"
	}
	return "Done"
}

func platformParams(p ActionParams) platform.ActionParams {
	return platform.ActionParams{
		Value:     p.Value,
		Direction: p.Direction,
		Amount:    p.Amount,
	}
}

func ok(format string, args ...any) ActionResult {
	return ActionResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) ActionResult {
	return ActionResult{Success: false, Error: fmt.Sprintf(format, args...)}
}
