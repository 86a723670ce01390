// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the variant source documents. A problem block's
// title is always rendered; its wrapped statement is rendered only in
// show-problems mode, and in hide-problems mode it is absent from the
// output entirely, not merely hidden. Everything else passes through
// verbatim, so the two variants differ only along that one axis.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bookforge/pkg/types"
)

// MainFile is the name of the assembled variant source inside a work
// directory. The compiled artifact appears next to it as main.pdf.
const MainFile = "main.tex"

// preamble is the fixed document preamble shared by both variants. It
// defines the two frame treatments: fullproblem draws the dark visible
// border used when statements are shown, lightproblem the faint border
// used when only titles remain.
const preamble = `\documentclass[11pt]{book}
\usepackage[margin=1in]{geometry}
\usepackage{amsmath,amssymb,amsthm}
\usepackage{framed}
\usepackage{xcolor}

\newenvironment{fullproblem}[1]%
  {\def\FrameCommand{\fboxsep=8pt\fcolorbox{black!75}{white}}%
   \MakeFramed{\FrameRestore}\noindent\textbf{#1}\par\medskip}%
  {\endMakeFramed}

\newenvironment{lightproblem}[1]%
  {\def\FrameCommand{\fboxsep=8pt\fcolorbox{black!20}{white}}%
   \MakeFramed{\FrameRestore}\noindent\textbf{#1}\par\medskip}%
  {\endMakeFramed}

\newcommand{\problemrating}[2]{\noindent\textit{importance: #1, difficulty: #2}\par\smallskip}
`

// Block renders one problem block under the given mode. The framed
// container and title are always emitted. In show-problems mode the
// wrapped statement follows inside the full (dark) frame; in hide-problems
// mode the light frame is used and the statement is omitted. Free content
// is emitted in both variants, which is where an unwrapped statement leaks.
func Block(b types.ProblemBlock, mode types.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q", mode)
	}
	if b.Title == "" {
		return "", fmt.Errorf("%s:%d: problem block has no title", b.File, b.Line)
	}

	env := "lightproblem"
	if mode == types.ModeShowProblems {
		env = "fullproblem"
	}

	var out strings.Builder
	fmt.Fprintf(&out, "\\begin{%s}{%s}\n", env, b.Title)
	if b.Rating != nil {
		fmt.Fprintf(&out, "\\problemrating{%s}{%s}\n", b.Rating.Importance, b.Rating.Difficulty)
	}
	if mode == types.ModeShowProblems && b.Wrapped && b.Statement != "" {
		out.WriteString(b.Statement)
		out.WriteString("\n")
	}
	if b.FreeContent != "" {
		out.WriteString(b.FreeContent)
		out.WriteString("\n")
	}
	fmt.Fprintf(&out, "\\end{%s}\n", env)
	return out.String(), nil
}

// TitlePage renders the title page for one variant: book title, the fixed
// variant label for the mode, and the authored author/date lines. The label
// is the only mode-dependent element.
func TitlePage(m types.Manifest, mode types.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q", mode)
	}

	var out strings.Builder
	out.WriteString("\\begin{titlepage}\n\\centering\n")
	fmt.Fprintf(&out, "\\vspace*{3cm}\n{\\Huge %s}\\\\[2em]\n", m.Title)
	fmt.Fprintf(&out, "{\\Large %s}\\\\[3em]\n", mode.Label())
	if m.Author != "" {
		fmt.Fprintf(&out, "%s\\\\[1em]\n", m.Author)
	}
	if m.Date != "" {
		fmt.Fprintf(&out, "%s\\\\\n", m.Date)
	}
	out.WriteString("\\end{titlepage}\n")
	return out.String(), nil
}

// TableOfContents renders the contents listing from chapter and problem
// titles. It takes no mode: bodies never contribute, so the output is
// byte-identical across the two variants.
func TableOfContents(chapters []types.Chapter) string {
	var out strings.Builder
	out.WriteString("\\chapter*{Contents}\n")
	for i, ch := range chapters {
		fmt.Fprintf(&out, "\\noindent\\textbf{%d. %s}\\par\n", i+1, ch.Title)
		for _, b := range ch.Blocks() {
			fmt.Fprintf(&out, "\\noindent\\quad %s\\par\n", b.Title)
		}
	}
	return out.String()
}

// Chapter renders one chapter: pass-through runs verbatim, problem blocks
// through Block.
func Chapter(ch types.Chapter, mode types.Mode) (string, error) {
	var out strings.Builder
	for _, it := range ch.Items {
		if it.Block == nil {
			out.WriteString(it.Text)
			continue
		}
		s, err := Block(*it.Block, mode)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

// Document assembles the complete variant source for one mode: preamble,
// title page, table of contents, and every chapter in order. The output is
// deterministic; nothing in it depends on the environment or the clock.
func Document(b *types.Book, mode types.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q", mode)
	}

	title, err := TitlePage(b.Manifest, mode)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(preamble)
	out.WriteString("\\begin{document}\n")
	out.WriteString(title)
	out.WriteString(TableOfContents(b.Chapters))
	for _, ch := range b.Chapters {
		s, err := Chapter(ch, mode)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
		out.WriteString("\n")
	}
	out.WriteString("\\end{document}\n")
	return out.String(), nil
}
