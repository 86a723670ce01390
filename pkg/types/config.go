package types

// CompileConfig holds settings for the external document compiler.
type CompileConfig struct {
	// Engine selects the LaTeX engine: pdflatex, xelatex, or lualatex.
	// Empty means detect, trying the engines in that order.
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`

	// Passes is the number of compiler invocations per variant (default 2,
	// so cross-references and page numbers settle).
	Passes int `json:"passes,omitempty" yaml:"passes,omitempty"`

	// KeepAux disables removal of auxiliary files after compilation.
	KeepAux bool `json:"keep_aux,omitempty" yaml:"keep_aux,omitempty"`
}

// BuildConfig holds settings for the two-pass build orchestrator.
type BuildConfig struct {
	// ProjectDir is the book project directory (contains book.yaml and
	// chapter sources).
	ProjectDir string `json:"project_dir" yaml:"project_dir"`

	// OutputDir is the directory for finished artifacts (contains index/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// WorkDir is the staging area for rendered variant sources. Each
	// variant gets its own subdirectory so the passes never overlap.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// SkipOnFailure makes the orchestrator skip the remaining variant
	// after a failed pass instead of attempting it. Either way a failed
	// pass never suppresses the other silently.
	SkipOnFailure bool `json:"skip_on_failure,omitempty" yaml:"skip_on_failure,omitempty"`

	// Compile configures the external compiler invocation.
	Compile CompileConfig `json:"compile" yaml:"compile"`
}

// LintConfig holds settings for the authoring-discipline linter.
type LintConfig struct {
	// CheckQED enables the check that Solution/Proof regions end with \qed.
	CheckQED bool `json:"check_qed" yaml:"check_qed"`
}

// HistoryConfig holds settings for the build history store.
type HistoryConfig struct {
	// Disabled turns off build recording entirely.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// ProjectConfig groups all tool configuration (bookforge.yaml).
type ProjectConfig struct {
	Build   BuildConfig   `json:"build" yaml:"build"`
	Lint    LintConfig    `json:"lint" yaml:"lint"`
	History HistoryConfig `json:"history" yaml:"history"`
}
