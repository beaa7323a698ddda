package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/output"
	"github.com/computeruseprotocol/go-sdk/internal/session"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List open windows without capturing any tree",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("json", false, "Print the window list as JSON instead of overview text")
}

func runWindows(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	sess, err := session.NewFromConfig(sessionConfig(cmd))
	if err != nil {
		return err
	}
	result, err := sess.Snapshot(context.Background(), session.SnapshotRequest{Scope: model.ScopeOverview})
	if err != nil {
		return err
	}

	if asJSON {
		output.OutputFormat = output.FormatJSON
		return output.Print(result.Envelope)
	}
	fmt.Print(result.Compact)
	return nil
}
