package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/computeruseprotocol/go-sdk/internal/format"
	"github.com/computeruseprotocol/go-sdk/internal/model"
	"github.com/computeruseprotocol/go-sdk/internal/session"
	"github.com/computeruseprotocol/go-sdk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cup",
	Short: "Expose the desktop UI to agents as a canonical semantic tree",
	Long: "cup captures the visible UI through the native accessibility APIs " +
		"(UI Automation, AXUIElement, AT-SPI2, or the Chrome DevTools Protocol) " +
		"and renders it as a canonical tree of elements that agents can search " +
		"and act on.",
	RunE: runSnapshot,
}

// Execute runs the root command. Exit code 0 on success, 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	rootCmd.PersistentFlags().String("platform", "", "Force platform adapter: windows, macos, linux, web")
	rootCmd.PersistentFlags().Int("cdp-port", 9222, "Chrome DevTools port for the web adapter")
	rootCmd.PersistentFlags().String("cdp-host", "127.0.0.1", "Chrome DevTools host for the web adapter")
	rootCmd.PersistentFlags().Bool("verbose", false, "Print capture diagnostics to stderr")

	rootCmd.Flags().String("scope", "foreground", "Capture scope: overview, foreground, desktop, full")
	rootCmd.Flags().Int("depth", 0, "Max tree depth to walk (0 = unlimited)")
	rootCmd.Flags().String("app", "", "Capture the window matching this title substring")
	rootCmd.Flags().String("detail", "standard", "Pruning level: minimal, standard, full")
	rootCmd.Flags().String("json-out", "", "Write the pruned envelope JSON to this file")
	rootCmd.Flags().String("full-json-out", "", "Write the unpruned envelope JSON to this file")
	rootCmd.Flags().String("compact-out", "", "Write compact text to this file instead of stdout")
	rootCmd.Flags().Int("max-chars", format.DefaultMaxChars, "Compact output character budget")
}

// sessionConfig builds the session config from persistent flags.
func sessionConfig(cmd *cobra.Command) session.Config {
	platformTag, _ := cmd.Flags().GetString("platform")
	cdpPort, _ := cmd.Flags().GetInt("cdp-port")
	cdpHost, _ := cmd.Flags().GetString("cdp-host")
	return session.Config{Platform: platformTag, CDPHost: cdpHost, CDPPort: cdpPort}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	scope, _ := cmd.Flags().GetString("scope")
	depth, _ := cmd.Flags().GetInt("depth")
	app, _ := cmd.Flags().GetString("app")
	detail, _ := cmd.Flags().GetString("detail")
	jsonOut, _ := cmd.Flags().GetString("json-out")
	fullJSONOut, _ := cmd.Flags().GetString("full-json-out")
	compactOut, _ := cmd.Flags().GetString("compact-out")
	maxChars, _ := cmd.Flags().GetInt("max-chars")
	verbose, _ := cmd.Flags().GetBool("verbose")

	sess, err := session.NewFromConfig(sessionConfig(cmd))
	if err != nil {
		return err
	}

	result, err := sess.Snapshot(context.Background(), session.SnapshotRequest{
		Scope:     scope,
		AppFilter: app,
		MaxDepth:  depth,
		Detail:    detail,
		Output:    session.OutputOptions{Compact: true, MaxChars: maxChars},
	})
	if err != nil {
		return err
	}

	if verbose && result.Stats != nil {
		fmt.Fprintf(os.Stderr, "captured %d nodes, max depth %d\n", result.Stats.Nodes, result.Stats.MaxDepth)
		for role, count := range result.Stats.Roles {
			fmt.Fprintf(os.Stderr, "  %-30s %d\n", role, count)
		}
	}

	if jsonOut != "" {
		if err := writeEnvelope(jsonOut, result.Envelope); err != nil {
			return err
		}
	}
	if fullJSONOut != "" {
		if err := writeEnvelope(fullJSONOut, result.Full); err != nil {
			return err
		}
	}

	if compactOut != "" {
		return os.WriteFile(compactOut, []byte(result.Compact), 0o644)
	}
	fmt.Print(result.Compact)
	return nil
}

func writeEnvelope(path string, env *model.Envelope) error {
	data, err := format.EnvelopeJSONIndent(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
