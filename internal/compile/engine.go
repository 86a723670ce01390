// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compile invokes the external document compiler. The compiler is
// a black box: given a variant source directory it either produces a PDF
// or reports an error. Engine detection and execution follow the same
// strategy for every supported LaTeX engine; they differ only in binary
// name.
package compile

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
	binLualatex = "lualatex"
)

// defaultPasses is the number of compiler invocations per variant. Two
// passes let cross-references and page numbers settle.
const defaultPasses = 2

// auxExtensions lists the auxiliary files a LaTeX run leaves behind.
var auxExtensions = []string{".aux", ".log", ".toc", ".out", ".fdb_latexmk", ".fls", ".synctex.gz"}

// Engine compiles a variant source directory into a PDF.
type Engine interface {
	// Name returns the engine binary name.
	Name() string

	// Available reports whether the engine binary exists on PATH and
	// responds to a version query.
	Available() bool

	// Compile runs the engine over mainFile inside dir. On success the
	// PDF appears next to the source with a .pdf extension.
	Compile(dir, mainFile string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunInDir(dir, name string, args []string, output io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunInDir(dir, name string, args []string, output io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = output
	cmd.Stderr = output
	return cmd.Run()
}

// latexEngine implements Engine for a specific LaTeX binary. All supported
// engines share invocation flags and pass count.
type latexEngine struct {
	bin    string
	passes int
	exec   executor
}

func (e *latexEngine) Name() string { return e.bin }

func (e *latexEngine) Available() bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.RunSilent(e.bin, "--version") == nil
}

func (e *latexEngine) Compile(dir, mainFile string) error {
	args := []string{"-interaction=nonstopmode", "-halt-on-error", mainFile}
	for pass := 1; pass <= e.passes; pass++ {
		if err := e.exec.RunInDir(dir, e.bin, args, io.Discard); err != nil {
			return fmt.Errorf("%s pass %d of %d failed: %w", e.bin, pass, e.passes, err)
		}
	}
	return nil
}

func newEngine(bin string, passes int, exec executor) *latexEngine {
	if passes <= 0 {
		passes = defaultPasses
	}
	return &latexEngine{bin: bin, passes: passes, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectEngine tries pdflatex, then xelatex, then lualatex. Returns an
// error if no engine is available.
func DetectEngine(passes int) (Engine, error) {
	return detectEngine(passes, defaultExec)
}

func detectEngine(passes int, exec executor) (Engine, error) {
	for _, bin := range []string{binPdflatex, binXelatex, binLualatex} {
		e := newEngine(bin, passes, exec)
		if e.Available() {
			return e, nil
		}
	}
	return nil, fmt.Errorf(
		"no LaTeX engine available: none of %s, %s, or %s found or operational",
		binPdflatex, binXelatex, binLualatex,
	)
}

// NewEngine returns the named engine, verifying the name is supported and
// the binary is operational. An empty name falls back to detection.
func NewEngine(name string, passes int) (Engine, error) {
	return newNamedEngine(name, passes, defaultExec)
}

func newNamedEngine(name string, passes int, exec executor) (Engine, error) {
	if name == "" {
		return detectEngine(passes, exec)
	}
	switch name {
	case binPdflatex, binXelatex, binLualatex:
	default:
		return nil, fmt.Errorf("unsupported engine %q: use %s, %s, or %s",
			name, binPdflatex, binXelatex, binLualatex)
	}
	e := newEngine(name, passes, exec)
	if !e.Available() {
		return nil, fmt.Errorf("engine %s not found or not operational", name)
	}
	return e, nil
}

// CleanAux removes the auxiliary files a compile run left next to the
// main source. Missing files are not an error.
func CleanAux(dir, mainFile string) {
	base := strings.TrimSuffix(mainFile, filepath.Ext(mainFile))
	for _, ext := range auxExtensions {
		os.Remove(filepath.Join(dir, base+ext))
	}
}

// PDFPath returns the path of the artifact a successful compile produces
// for mainFile inside dir.
func PDFPath(dir, mainFile string) string {
	base := strings.TrimSuffix(mainFile, filepath.Ext(mainFile))
	return filepath.Join(dir, base+".pdf")
}
