// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookforge/internal/book"
	"github.com/pdiddy/bookforge/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the authoring discipline of a book project",
	Long: `Lint flags problem blocks whose content is not wrapped in a
problemstatement region (such content appears in both variants), titles
that are empty or duplicated within a chapter, and Solution/Proof regions
that do not end with \qed.

Findings are warnings: they never fail a build. Use --strict to exit
non-zero when anything is found, for use in CI.`,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	projectDir := stringSetting(cmd, "project", "build.project_dir")

	b, err := book.Load(projectDir)
	if err != nil {
		return err
	}

	findings := lint.Book(b)

	if boolSetting(cmd, "qed", "lint.check_qed") {
		m := b.Manifest
		files, err := book.ChapterFiles(projectDir, m)
		if err != nil {
			return err
		}
		for _, f := range files {
			fs, err := lint.QED(f)
			if err != nil {
				return err
			}
			findings = append(findings, fs...)
		}
	}

	lint.Report(os.Stdout, findings)

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(findings) > 0 {
		return fmt.Errorf("%d finding(s)", len(findings))
	}
	return nil
}

func init() {
	lintCmd.Flags().String("project", ".", "book project directory (contains book.yaml)")
	lintCmd.Flags().Bool("qed", true, "check that Solution/Proof regions end with \\qed")
	lintCmd.Flags().Bool("strict", false, "exit non-zero when findings exist")

	rootCmd.AddCommand(lintCmd)
}
