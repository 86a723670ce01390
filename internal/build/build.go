// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build drives the two render passes. Each pass renders the book
// under one mode, hands the variant source to the external compiler, and
// copies the artifact to its fixed, mode-derived output name. A failed
// pass never suppresses the other: the orchestrator runs both and reports
// both outcomes.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/bookforge/internal/compile"
	"github.com/pdiddy/bookforge/internal/render"
	"github.com/pdiddy/bookforge/pkg/types"
)

// VariantStatus is the outcome of one render pass.
type VariantStatus string

const (
	StatusBuilt   VariantStatus = "built"
	StatusFailed  VariantStatus = "failed"
	StatusSkipped VariantStatus = "skipped"
)

// VariantResult holds the outcome of one render pass. Immutable once
// produced; the two results share no state.
type VariantResult struct {
	// Mode is the mode the pass ran under.
	Mode types.Mode

	// Status is built, failed, or skipped.
	Status VariantStatus

	// Artifact is the output PDF path, empty unless built.
	Artifact string

	// Duration is the wall time of the pass.
	Duration time.Duration

	// Err is the failure cause, nil unless failed.
	Err error
}

// Summary aggregates both passes' outcomes.
type Summary struct {
	Built   int
	Failed  int
	Skipped int
	Results []VariantResult
}

// Total returns the number of passes attempted or skipped.
func (s Summary) Total() int {
	return s.Built + s.Failed + s.Skipped
}

// HasFailures reports whether any pass failed or was skipped.
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.Skipped > 0
}

// Recorder persists per-pass outcomes. The history store implements it;
// a nil Recorder disables recording.
type Recorder interface {
	Record(res VariantResult, sourceDigest string) error
}

// Builder runs the build passes for one project.
type Builder struct {
	cfg    types.BuildConfig
	engine compile.Engine

	// Recorder receives each pass outcome when non-nil.
	Recorder Recorder

	// SourceDigest identifies the source tree state handed to Recorder.
	SourceDigest string
}

// New returns a Builder for the given configuration and compiler engine.
func New(cfg types.BuildConfig, engine compile.Engine) *Builder {
	return &Builder{cfg: cfg, engine: engine}
}

// BuildAll runs both passes in fixed order (show-problems, then
// hide-problems), printing per-pass status lines to w. When SkipOnFailure
// is set, a failed pass causes the remaining one to be skipped explicitly;
// otherwise it is still attempted.
func (b *Builder) BuildAll(book *types.Book, w io.Writer) Summary {
	var summary Summary
	failed := false

	for _, mode := range types.Modes() {
		if failed && b.cfg.SkipOnFailure {
			fmt.Fprintf(w, "skipped: %s (previous variant failed)\n", mode)
			res := VariantResult{Mode: mode, Status: StatusSkipped}
			summary.Skipped++
			summary.Results = append(summary.Results, res)
			b.record(res, w)
			continue
		}

		res := b.BuildVariant(book, mode)
		switch res.Status {
		case StatusBuilt:
			fmt.Fprintf(w, "built:   %s -> %s\n", mode, res.Artifact)
			summary.Built++
		case StatusFailed:
			fmt.Fprintf(w, "failed:  %s (%v)\n", mode, res.Err)
			summary.Failed++
			failed = true
		}
		summary.Results = append(summary.Results, res)
		b.record(res, w)
	}

	fmt.Fprintf(w, "\nBuild summary: %d built, %d failed, %d skipped\n",
		summary.Built, summary.Failed, summary.Skipped)
	return summary
}

// BuildVariant runs a single pass: render the variant source into its own
// work directory, compile, and copy the PDF to the output directory under
// the mode's fixed name.
func (b *Builder) BuildVariant(book *types.Book, mode types.Mode) VariantResult {
	start := time.Now()
	res := VariantResult{Mode: mode}

	artifact, err := b.buildVariant(book, mode)
	res.Duration = time.Since(start)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("variant %s: %w", mode, err)
		return res
	}
	res.Status = StatusBuilt
	res.Artifact = artifact
	return res
}

func (b *Builder) buildVariant(book *types.Book, mode types.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q", mode)
	}

	src, err := render.Document(book, mode)
	if err != nil {
		return "", err
	}

	workDir := filepath.Join(b.cfg.WorkDir, string(mode))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	mainPath := filepath.Join(workDir, render.MainFile)
	if err := os.WriteFile(mainPath, []byte(src), 0o644); err != nil {
		return "", fmt.Errorf("writing variant source: %w", err)
	}

	if err := b.engine.Compile(workDir, render.MainFile); err != nil {
		return "", err
	}
	if !b.cfg.Compile.KeepAux {
		compile.CleanAux(workDir, render.MainFile)
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	artifact := filepath.Join(b.cfg.OutputDir, book.Manifest.OutputBase+mode.ArtifactSuffix()+".pdf")
	if err := copyFile(compile.PDFPath(workDir, render.MainFile), artifact); err != nil {
		return "", err
	}
	return artifact, nil
}

func (b *Builder) record(res VariantResult, w io.Writer) {
	if b.Recorder == nil {
		return
	}
	if err := b.Recorder.Record(res, b.SourceDigest); err != nil {
		fmt.Fprintf(w, "warning: recording build: %v\n", err)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}
