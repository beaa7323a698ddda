package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/computeruseprotocol/go-sdk/internal/output"
	"github.com/computeruseprotocol/go-sdk/internal/session"
)

var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search the UI for elements",
	Long: "Search the foreground UI for elements by free-form query, role, name, " +
		"or state, ranked by relevance. A snapshot is taken automatically.",
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("role", "", "Role filter (synonyms accepted, e.g. \"btn\", \"search bar\")")
	findCmd.Flags().String("name", "", "Name filter")
	findCmd.Flags().String("state", "", "Required state (e.g. focused, checked)")
	findCmd.Flags().Int("limit", 5, "Max results")
	findCmd.Flags().Float64("threshold", 0.15, "Minimum score to report")
}

// findRow is one search hit in CLI output.
type findRow struct {
	ID      string   `yaml:"id"                json:"id"`
	Role    string   `yaml:"role"              json:"role"`
	Name    string   `yaml:"name,omitempty"    json:"name,omitempty"`
	Value   string   `yaml:"value,omitempty"   json:"value,omitempty"`
	States  []string `yaml:"states,omitempty"  json:"states,omitempty"`
	Actions []string `yaml:"actions,omitempty" json:"actions,omitempty"`
	Score   float64  `yaml:"score"             json:"score"`
}

// findOutput is the top-level output of the find command.
type findOutput struct {
	Query   string    `yaml:"query,omitempty" json:"query,omitempty"`
	Total   int       `yaml:"total"           json:"total"`
	Matches []findRow `yaml:"matches"         json:"matches"`
}

func runFind(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	role, _ := cmd.Flags().GetString("role")
	name, _ := cmd.Flags().GetString("name")
	state, _ := cmd.Flags().GetString("state")
	limit, _ := cmd.Flags().GetInt("limit")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	if query == "" && role == "" && name == "" && state == "" {
		return fmt.Errorf("a query or at least one of --role, --name, --state is required")
	}

	sess, err := session.NewFromConfig(sessionConfig(cmd))
	if err != nil {
		return err
	}
	results, err := sess.Find(context.Background(), session.FindRequest{
		Query:     query,
		Role:      role,
		Name:      name,
		State:     state,
		Limit:     limit,
		Threshold: threshold,
	})
	if err != nil {
		return err
	}

	out := findOutput{Query: query, Total: len(results), Matches: []findRow{}}
	for _, r := range results {
		out.Matches = append(out.Matches, findRow{
			ID:      r.Node.ID,
			Role:    r.Node.Role,
			Name:    r.Node.Name,
			Value:   r.Node.Value,
			States:  r.Node.States,
			Actions: r.Node.Actions,
			Score:   r.Score,
		})
	}
	return output.Print(out)
}
