// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint checks the authoring discipline the renderer relies on.
// Statement omission is only correct when every statement sits in a
// problemstatement region; free text after the title is indistinguishable
// from "no statement" at render time and leaks into the solutions-only
// variant. The linter flags that, plus a few related slips. Findings are
// warnings reported locally, never build failures.
package lint

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/bookforge/pkg/types"
)

// FindingKind identifies a class of authoring problem.
type FindingKind string

const (
	// KindUnwrappedStatement flags a problem block with free content but
	// no problemstatement region: the statement will leak into the
	// solutions-only variant.
	KindUnwrappedStatement FindingKind = "unwrapped-statement"

	// KindEmptyTitle flags a problem block whose title is empty. Rendering
	// such a block fails, so this surfaces the error before a build.
	KindEmptyTitle FindingKind = "empty-title"

	// KindDuplicateTitle flags a title used twice within one chapter.
	// Titles cross-reference problems, so they must be unique per chapter.
	KindDuplicateTitle FindingKind = "duplicate-title"

	// KindMissingQED flags a Solution or Proof region that does not end
	// with \qed.
	KindMissingQED FindingKind = "missing-qed"
)

// Finding is one located authoring problem.
type Finding struct {
	Kind    FindingKind
	File    string
	Line    int
	Title   string
	Message string
}

// Book checks every chapter's problem blocks against the structural
// authoring rules.
func Book(b *types.Book) []Finding {
	var findings []Finding
	for _, ch := range b.Chapters {
		seen := make(map[string]bool)
		for _, blk := range ch.Blocks() {
			if blk.Title == "" {
				findings = append(findings, Finding{
					Kind:    KindEmptyTitle,
					File:    blk.File,
					Line:    blk.Line,
					Message: "problem block has no title",
				})
			} else if seen[blk.Title] {
				findings = append(findings, Finding{
					Kind:    KindDuplicateTitle,
					File:    blk.File,
					Line:    blk.Line,
					Title:   blk.Title,
					Message: fmt.Sprintf("title %q already used in this chapter", blk.Title),
				})
			}
			seen[blk.Title] = true

			if !blk.Wrapped && blk.FreeContent != "" {
				findings = append(findings, Finding{
					Kind:    KindUnwrappedStatement,
					File:    blk.File,
					Line:    blk.Line,
					Title:   blk.Title,
					Message: "content is not wrapped in a problemstatement region and will appear in the solutions-only variant",
				})
			}
		}
	}
	return findings
}

// solutionPattern matches the start of a Solution or Proof region.
var solutionPattern = regexp.MustCompile(`\{(Solution|Proof):`)

// regionEndPattern matches markers that terminate a Solution/Proof region.
var regionEndPattern = regexp.MustCompile(`^\s*\\(begin\{problembox|section\{|chapter\{|subsection\{)`)

// QED scans a chapter source for Solution/Proof regions that do not end
// with \qed. Solutions are pass-through text, so this works on the raw
// file rather than the scanned model.
func QED(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var findings []Finding
	lines := strings.Split(string(data), "\n")
	for i := 0; i < len(lines); {
		if !solutionPattern.MatchString(lines[i]) {
			i++
			continue
		}

		end := i + 1
		for end < len(lines) && !regionEndPattern.MatchString(lines[end]) {
			end++
		}

		last := end - 1
		for last > i && strings.TrimSpace(lines[last]) == "" {
			last--
		}
		if last > i && !strings.HasSuffix(strings.TrimSpace(lines[last]), `\qed`) {
			findings = append(findings, Finding{
				Kind:    KindMissingQED,
				File:    path,
				Line:    i + 1,
				Message: `solution or proof does not end with \qed`,
			})
		}
		i = end
	}
	return findings, nil
}

// Report writes findings to w, one line each, in file:line form.
func Report(w io.Writer, findings []Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "%s:%d: %s: %s\n", f.File, f.Line, f.Kind, f.Message)
	}
	if len(findings) == 0 {
		fmt.Fprintln(w, "No problems found.")
		return
	}
	fmt.Fprintf(w, "\n%d finding(s)\n", len(findings))
}
