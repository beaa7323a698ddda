package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/computeruseprotocol/go-sdk/internal/format"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/session"
)

// stringParam reads a string argument with a default.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// intParam reads a numeric argument with a default.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func toYAML(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func (s *Server) snapshotWith(ctx context.Context, req session.SnapshotRequest) (*mcp.CallToolResult, error) {
	cctx, cancel := context.WithTimeout(ctx, defaultToolTimeout)
	defer cancel()

	req.Output.Compact = true
	result, err := s.sess.Snapshot(cctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.Compact), nil
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.snapshotWith(ctx, session.SnapshotRequest{
		Scope:    stringParam(params, "scope", model.ScopeForeground),
		Detail:   stringParam(params, "detail", model.DetailStandard),
		MaxDepth: intParam(params, "max_depth", 0),
		Output: session.OutputOptions{
			MaxChars: intParam(params, "max_chars", format.DefaultMaxChars),
		},
	})
}

func (s *Server) handleSnapshotApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	if app == "" {
		return mcp.NewToolResultError("app is required"), nil
	}
	return s.snapshotWith(ctx, session.SnapshotRequest{
		Scope:     model.ScopeForeground,
		AppFilter: app,
		Detail:    stringParam(params, "detail", model.DetailStandard),
		MaxDepth:  intParam(params, "max_depth", 0),
		Output: session.OutputOptions{
			MaxChars: intParam(params, "max_chars", format.DefaultMaxChars),
		},
	})
}

func (s *Server) handleWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cctx, cancel := context.WithTimeout(ctx, defaultToolTimeout)
	defer cancel()

	result, err := s.sess.Snapshot(cctx, session.SnapshotRequest{Scope: model.ScopeOverview})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.Compact), nil
}

// findMatch is one search hit in tool output.
type findMatch struct {
	ID      string   `yaml:"id"`
	Role    string   `yaml:"role"`
	Name    string   `yaml:"name,omitempty"`
	Value   string   `yaml:"value,omitempty"`
	States  []string `yaml:"states,omitempty"`
	Actions []string `yaml:"actions,omitempty"`
	Score   float64  `yaml:"score"`
}

func (s *Server) handleFind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cctx, cancel := context.WithTimeout(ctx, defaultToolTimeout)
	defer cancel()

	results, err := s.sess.Find(cctx, session.FindRequest{
		Query: stringParam(params, "query", ""),
		Role:  stringParam(params, "role", ""),
		Name:  stringParam(params, "name", ""),
		State: stringParam(params, "state", ""),
		Limit: intParam(params, "limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := make([]findMatch, len(results))
	for i, r := range results {
		matches[i] = findMatch{
			ID:      r.Node.ID,
			Role:    r.Node.Role,
			Name:    r.Node.Name,
			Value:   r.Node.Value,
			States:  r.Node.States,
			Actions: r.Node.Actions,
			Score:   r.Score,
		}
	}
	return mcp.NewToolResultText(toYAML(map[string]any{
		"total":   len(matches),
		"matches": matches,
	})), nil
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cctx, cancel := context.WithTimeout(ctx, defaultToolTimeout)
	defer cancel()

	result := s.sess.Execute(cctx, session.ExecuteRequest{
		ElementID: stringParam(params, "element_id", ""),
		Action:    stringParam(params, "action", ""),
		Params: session.ActionParams{
			Value:     stringParam(params, "value", ""),
			Direction: stringParam(params, "direction", ""),
			Keys:      stringParam(params, "keys", ""),
		},
	})
	if !result.Success {
		return mcp.NewToolResultError(toYAML(result)), nil
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	rawSteps, ok := params["steps"].([]interface{})
	if !ok || len(rawSteps) == 0 {
		return mcp.NewToolResultError("steps is required and must be a non-empty array"), nil
	}

	steps := make([]session.BatchStep, 0, len(rawSteps))
	for _, raw := range rawSteps {
		stepMap, ok := raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("each step must be an object"), nil
		}
		steps = append(steps, session.BatchStep{
			Action:    stringParam(stepMap, "action", ""),
			Ms:        intParam(stepMap, "ms", 0),
			Keys:      stringParam(stepMap, "keys", ""),
			ElementID: stringParam(stepMap, "element_id", ""),
			Value:     stringParam(stepMap, "value", ""),
			Direction: stringParam(stepMap, "direction", ""),
			Amount:    intParam(stepMap, "amount", 0),
		})
	}

	cctx, cancel := context.WithTimeout(ctx, defaultToolTimeout)
	defer cancel()
	results := s.sess.ExecuteBatch(cctx, steps)

	completed := 0
	for _, r := range results {
		if r.Success {
			completed++
		}
	}
	return mcp.NewToolResultText(toYAML(map[string]any{
		"steps":     len(steps),
		"completed": completed,
		"results":   results,
	})), nil
}
