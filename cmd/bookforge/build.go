// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookforge/internal/book"
	"github.com/pdiddy/bookforge/internal/build"
	"github.com/pdiddy/bookforge/internal/compile"
	"github.com/pdiddy/bookforge/internal/history"
	"github.com/pdiddy/bookforge/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build both book variants",
	Long: `Build renders the book twice, once per mode, and compiles each
rendered source with the external LaTeX engine. The two passes run in a
fixed order and write two artifacts with fixed, mode-derived names
(<base>_with_problems.pdf and <base>_solutions_only.pdf). A failed pass
does not stop the other; both outcomes are reported and the exit status
is non-zero when either pass fails.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := buildConfig(cmd)

	b, err := book.Load(cfg.ProjectDir)
	if err != nil {
		return err
	}

	engineName := stringSetting(cmd, "engine", "build.compile.engine")
	engine, err := compile.NewEngine(engineName, cfg.Compile.Passes)
	if err != nil {
		return err
	}

	builder := build.New(cfg, engine)
	if digest, err := book.SourceDigest(cfg.ProjectDir, b.Manifest); err == nil {
		builder.SourceDigest = digest
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory && !viper.GetBool("history.disabled") {
		store, err := history.NewStore(cfg.OutputDir, historyConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: build history unavailable: %v\n", err)
		} else {
			defer store.Close()
			builder.Recorder = store
		}
	}

	if variant, _ := cmd.Flags().GetString("variant"); variant != "" {
		mode, err := types.ParseMode(variant)
		if err != nil {
			return err
		}
		res := builder.BuildVariant(b, mode)
		if builder.Recorder != nil {
			if err := builder.Recorder.Record(res, builder.SourceDigest); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording build: %v\n", err)
			}
		}
		if res.Status == build.StatusFailed {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", mode, res.Err)
			return fmt.Errorf("variant %s failed", mode)
		}
		fmt.Fprintf(os.Stdout, "built:   %s -> %s\n", mode, res.Artifact)
		return nil
	}

	summary := builder.BuildAll(b, os.Stdout)
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d variant build(s) did not complete", summary.Failed+summary.Skipped, summary.Total())
	}
	return nil
}

// buildConfig assembles the build configuration from flags and bookforge.yaml.
func buildConfig(cmd *cobra.Command) types.BuildConfig {
	passes, _ := cmd.Flags().GetInt("passes")
	return types.BuildConfig{
		ProjectDir:    stringSetting(cmd, "project", "build.project_dir"),
		OutputDir:     stringSetting(cmd, "output", "build.output_dir"),
		WorkDir:       stringSetting(cmd, "work", "build.work_dir"),
		SkipOnFailure: boolSetting(cmd, "skip-on-failure", "build.skip_on_failure"),
		Compile: types.CompileConfig{
			Passes:  passes,
			KeepAux: boolSetting(cmd, "keep-aux", "build.compile.keep_aux"),
		},
	}
}

func init() {
	buildCmd.Flags().String("project", ".", "book project directory (contains book.yaml)")
	buildCmd.Flags().String("output", "output", "directory for finished artifacts")
	buildCmd.Flags().String("work", "build", "staging directory for rendered variant sources")
	buildCmd.Flags().String("variant", "", "build a single variant: full or solutions-only")
	buildCmd.Flags().String("engine", "", "LaTeX engine: pdflatex, xelatex, or lualatex (default: detect)")
	buildCmd.Flags().Int("passes", 0, "compiler passes per variant (default 2)")
	buildCmd.Flags().Bool("skip-on-failure", false, "skip the remaining variant after a failed pass")
	buildCmd.Flags().Bool("keep-aux", false, "keep auxiliary compiler files in the work directory")
	buildCmd.Flags().Bool("no-history", false, "do not record this build in the history database")

	rootCmd.AddCommand(buildCmd)
}
