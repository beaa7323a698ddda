package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/computeruseprotocol/go-sdk/internal/output"
	"github.com/computeruseprotocol/go-sdk/internal/session"
)

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Perform an action on a UI element or press keys",
	Long: `Perform one action against the current UI, or a batch from stdin.

Element ids come from a snapshot taken in the same invocation of the MCP
server; from the CLI, exec re-snapshots first unless --no-snapshot is set,
so ids refer to the snapshot it just took.

Batch mode (--batch) reads a YAML list of steps from stdin:

  cup exec --batch <<'EOF'
  - {action: click, element_id: e14}
  - {action: wait, ms: 300}
  - {action: type, element_id: e5, value: "hello"}
  - {action: press_keys, keys: ctrl+s}
  EOF`,
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().String("id", "", "Element id (e.g. e14)")
	execCmd.Flags().String("action", "", "Action: click, type, setvalue, scroll, toggle, ... or press_keys")
	execCmd.Flags().String("value", "", "Text for type/setvalue")
	execCmd.Flags().String("direction", "", "Scroll direction: up, down, left, right")
	execCmd.Flags().String("keys", "", "Key combo for press_keys (e.g. ctrl+shift+p)")
	execCmd.Flags().Bool("batch", false, "Read a YAML list of steps from stdin")
	execCmd.Flags().Bool("no-snapshot", false, "Do not take a snapshot before executing")
}

// execOutput is the top-level output of a single exec.
type execOutput struct {
	Action string `yaml:"action" json:"action"`
	session.ActionResult `yaml:",inline"`
}

// batchOutput is the top-level output of a batch exec.
type batchOutput struct {
	Steps     int                    `yaml:"steps"     json:"steps"`
	Completed int                    `yaml:"completed" json:"completed"`
	Results   []session.ActionResult `yaml:"results"   json:"results"`
}

func runExec(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	noSnapshot, _ := cmd.Flags().GetBool("no-snapshot")

	sess, err := session.NewFromConfig(sessionConfig(cmd))
	if err != nil {
		return err
	}
	ctx := context.Background()

	if !noSnapshot {
		if _, err := sess.Snapshot(ctx, session.SnapshotRequest{}); err != nil {
			return err
		}
	}

	if batch {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		var steps []session.BatchStep
		if err := yaml.Unmarshal(data, &steps); err != nil {
			return fmt.Errorf("parse steps: %w", err)
		}
		if len(steps) == 0 {
			return fmt.Errorf("no steps provided — pipe a YAML list of actions")
		}
		results := sess.ExecuteBatch(ctx, steps)
		completed := 0
		for _, r := range results {
			if r.Success {
				completed++
			}
		}
		return output.Print(batchOutput{Steps: len(steps), Completed: completed, Results: results})
	}

	action, _ := cmd.Flags().GetString("action")
	if action == "" {
		return fmt.Errorf("--action is required (or use --batch)")
	}
	id, _ := cmd.Flags().GetString("id")
	value, _ := cmd.Flags().GetString("value")
	direction, _ := cmd.Flags().GetString("direction")
	keys, _ := cmd.Flags().GetString("keys")

	result := sess.Execute(ctx, session.ExecuteRequest{
		ElementID: id,
		Action:    action,
		Params:    session.ActionParams{Value: value, Direction: direction, Keys: keys},
	})
	return output.Print(execOutput{Action: action, ActionResult: result})
}
