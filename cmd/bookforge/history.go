// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookforge/internal/history"
	"github.com/pdiddy/bookforge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	Long: `History lists recent build passes from the history database, newest
first: mode, outcome, artifact, duration, and the source digest recorded
at build time.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	outputDir := stringSetting(cmd, "output", "build.output_dir")

	store, err := history.NewStore(outputDir, historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No builds recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-14s  %-8s  %-40s  %-10s  %s\n",
		"ID", "Mode", "Status", "Artifact", "Duration", "Built at")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, e := range entries {
		artifact := e.Artifact
		if len(artifact) > 40 {
			artifact = "..." + artifact[len(artifact)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-14s  %-8s  %-40s  %-10s  %s\n",
			e.ID, e.Mode, e.Status, artifact, e.Duration, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(os.Stdout, "\n%d build(s)\n", len(entries))
	return nil
}

// historyConfig assembles the history configuration from bookforge.yaml.
func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Disabled:   viper.GetBool("history.disabled"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func init() {
	historyCmd.Flags().String("output", "output", "directory for finished artifacts (contains index/)")
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (0 = default)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
