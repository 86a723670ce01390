// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Manifest holds the book.yaml project manifest.
type Manifest struct {
	// Title is the book title, printed on the title page of both variants.
	Title string `json:"title" yaml:"title"`

	// Author is the author line printed on the title page.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Date is a free-form date string printed verbatim on the title page.
	// It is authored, not generated, so rendering stays deterministic.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// OutputBase is the base name for output artifacts (e.g. "apostol"
	// produces apostol_with_problems.pdf and apostol_solutions_only.pdf).
	OutputBase string `json:"output_base" yaml:"output_base"`

	// Chapters lists chapter source files relative to the project directory.
	// When empty, files matching ch*.tex are discovered and sorted.
	Chapters []string `json:"chapters,omitempty" yaml:"chapters,omitempty"`
}

// Rating is an optional importance/difficulty annotation on a problem.
// Values are kept as authored strings and passed through verbatim.
type Rating struct {
	Importance string `json:"importance" yaml:"importance"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// ProblemBlock is one titled problem unit scanned from a chapter source.
// The title is always rendered; the wrapped statement is rendered only in
// show-problems mode. Blocks are read-only at render time.
type ProblemBlock struct {
	// Title is the problem title. Required, unique within a chapter.
	Title string

	// Statement is the content of the problemstatement region, verbatim.
	Statement string

	// Wrapped reports whether the block had a problemstatement region.
	// Distinguishes an empty wrapped region from no region at all.
	Wrapped bool

	// Rating is the optional rating annotation, nil when absent.
	Rating *Rating

	// FreeContent is content inside the block but outside the statement
	// region. It is emitted in both variants; statement text authored here
	// instead of in a problemstatement region leaks into the solutions-only
	// variant. The linter flags this.
	FreeContent string

	// File and Line locate the block's opening marker for diagnostics.
	File string
	Line int
}

// ChapterItem is one ordered element of a chapter: either a problem block
// or an opaque run of pass-through source.
type ChapterItem struct {
	// Block is the problem block, nil for pass-through items.
	Block *ProblemBlock

	// Text is the verbatim source for pass-through items.
	Text string
}

// Chapter holds one chapter source in document order.
type Chapter struct {
	// Title is the chapter title from the first \chapter marker, or the
	// source file's base name when the chapter has no heading.
	Title string

	// File is the chapter source path.
	File string

	// Items are the chapter's blocks and pass-through runs, in order.
	Items []ChapterItem
}

// Blocks returns the chapter's problem blocks in document order.
func (c Chapter) Blocks() []*ProblemBlock {
	var blocks []*ProblemBlock
	for _, it := range c.Items {
		if it.Block != nil {
			blocks = append(blocks, it.Block)
		}
	}
	return blocks
}

// Book is the fully loaded source tree: manifest plus chapters in order.
// Authored statically; read-only at render time.
type Book struct {
	Manifest Manifest
	Chapters []Chapter
}
