// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookforge/internal/book"
	"github.com/pdiddy/bookforge/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite chapter sources to repair authoring slips",
	Long: `Fix rewrites chapter sources in place. Subcommands select the repair:
wrap puts bare problembox content into a problemstatement region (keeping a
.backup of the original), qed closes Solution/Proof regions with \qed, and
ratings converts legacy emoji rating annotations to \problemrating.`,
}

var fixWrapCmd = &cobra.Command{
	Use:   "wrap [files...]",
	Short: "Wrap bare problembox content in a problemstatement region",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFixer(cmd, args, fix.WrapStatements)
	},
}

var fixQEDCmd = &cobra.Command{
	Use:   "qed [files...]",
	Short: "Append \\qed to Solution and Proof regions lacking one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFixer(cmd, args, fix.AddQED)
	},
}

var fixRatingsCmd = &cobra.Command{
	Use:   "ratings [files...]",
	Short: "Convert legacy emoji rating annotations to \\problemrating",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFixer(cmd, args, fix.RewriteRatings)
	},
}

// runFixer applies one fixer to the given files, or to every chapter in
// the project when no files are named.
func runFixer(cmd *cobra.Command, args []string, f func(string) (fix.Result, error)) error {
	files := args
	if len(files) == 0 {
		projectDir := stringSetting(cmd, "project", "build.project_dir")
		m, err := book.LoadManifest(projectDir)
		if err != nil {
			return err
		}
		files, err = book.ChapterFiles(projectDir, m)
		if err != nil {
			return err
		}
	}

	changed := 0
	for _, file := range files {
		res, err := f(file)
		if err != nil {
			return err
		}
		switch {
		case res.Changed && res.Backup != "":
			fmt.Fprintf(os.Stdout, "fixed:     %s (backup: %s)\n", res.File, res.Backup)
			changed++
		case res.Changed:
			fmt.Fprintf(os.Stdout, "fixed:     %s\n", res.File)
			changed++
		default:
			fmt.Fprintf(os.Stdout, "unchanged: %s\n", res.File)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d of %d file(s) changed\n", changed, len(files))
	return nil
}

func init() {
	fixCmd.PersistentFlags().String("project", ".", "book project directory (contains book.yaml)")

	fixCmd.AddCommand(fixWrapCmd)
	fixCmd.AddCommand(fixQEDCmd)
	fixCmd.AddCommand(fixRatingsCmd)

	rootCmd.AddCommand(fixCmd)
}
