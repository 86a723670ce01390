// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/bookforge/pkg/types"
)

func wrappedBlock() types.ProblemBlock {
	return types.ProblemBlock{
		Title:     "Problem 1.1",
		Statement: "Prove that the square root of 2 is irrational.",
		Wrapped:   true,
		File:      "ch1.tex",
		Line:      3,
	}
}

func TestBlock(t *testing.T) {
	tests := []struct {
		name        string
		block       types.ProblemBlock
		mode        types.Mode
		wantParts   []string
		absentParts []string
		wantErr     string
	}{
		{
			name:      "show-problems renders statement in full frame",
			block:     wrappedBlock(),
			mode:      types.ModeShowProblems,
			wantParts: []string{"fullproblem", "Problem 1.1", "square root of 2"},
		},
		{
			name:        "hide-problems omits statement and uses light frame",
			block:       wrappedBlock(),
			mode:        types.ModeHideProblems,
			wantParts:   []string{"lightproblem", "Problem 1.1"},
			absentParts: []string{"square root", "irrational", "fullproblem"},
		},
		{
			name: "unwrapped free content leaks into both variants",
			block: types.ProblemBlock{
				Title:       "Problem 1.2",
				FreeContent: "Show that e is irrational.",
			},
			mode:      types.ModeHideProblems,
			wantParts: []string{"Problem 1.2", "e is irrational"},
		},
		{
			name: "rating is rendered in both variants",
			block: types.ProblemBlock{
				Title:  "Problem 1.3",
				Rating: &types.Rating{Importance: "5", Difficulty: "2"},
			},
			mode:      types.ModeHideProblems,
			wantParts: []string{`\problemrating{5}{2}`},
		},
		{
			name:    "invalid mode is a configuration error",
			block:   wrappedBlock(),
			mode:    types.Mode("draft"),
			wantErr: "invalid mode",
		},
		{
			name:    "empty title is an error",
			block:   types.ProblemBlock{File: "ch1.tex", Line: 9},
			mode:    types.ModeShowProblems,
			wantErr: "no title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Block(tt.block, tt.mode)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantParts {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, absent := range tt.absentParts {
				if strings.Contains(out, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, out)
				}
			}
		})
	}
}

func TestTitlePageLabels(t *testing.T) {
	m := types.Manifest{Title: "Solutions to Apostol", Author: "A. Reader", Date: "2026"}

	full, err := TitlePage(m, types.ModeShowProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	solutions, err := TitlePage(m, types.ModeHideProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(full, types.ModeShowProblems.Label()) {
		t.Error("full title page missing its variant label")
	}
	if !strings.Contains(solutions, types.ModeHideProblems.Label()) {
		t.Error("solutions title page missing its variant label")
	}
	if types.ModeShowProblems.Label() == types.ModeHideProblems.Label() {
		t.Error("variant labels must never be equal")
	}
	if strings.Contains(solutions, types.ModeShowProblems.Label()) {
		t.Error("solutions title page carries the wrong label")
	}

	if _, err := TitlePage(m, types.Mode("bad")); err == nil {
		t.Error("invalid mode should be an error")
	}
}

func testBook() *types.Book {
	p1 := wrappedBlock()
	p2 := types.ProblemBlock{
		Title:       "Problem 1.2",
		FreeContent: "Show that e is irrational.", // authored without a statement region
		File:        "ch1.tex",
		Line:        12,
	}
	return &types.Book{
		Manifest: types.Manifest{Title: "Test Book", OutputBase: "test"},
		Chapters: []types.Chapter{
			{
				Title: "Irrationality",
				File:  "ch1.tex",
				Items: []types.ChapterItem{
					{Text: "\\chapter{Irrationality}\n"},
					{Block: &p1},
					{Text: "{Solution: } Suppose p/q in lowest terms. \\qed\n"},
					{Block: &p2},
					{Text: "{Solution: } Use the series for e. \\qed\n"},
				},
			},
		},
	}
}

func TestTableOfContentsModeIndependent(t *testing.T) {
	b := testBook()

	toc := TableOfContents(b.Chapters)
	for _, want := range []string{"Irrationality", "Problem 1.1", "Problem 1.2"} {
		if !strings.Contains(toc, want) {
			t.Errorf("TOC missing %q", want)
		}
	}
	if strings.Contains(toc, "square root") {
		t.Error("TOC must never contain statement text")
	}

	// The TOC is built from titles only, so both variants embed the same bytes.
	full, err := Document(b, types.ModeShowProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	solutions, err := Document(b, types.ModeHideProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(full, toc) || !strings.Contains(solutions, toc) {
		t.Error("both variants should embed the identical TOC bytes")
	}
}

func TestDocumentVariants(t *testing.T) {
	b := testBook()

	full, err := Document(b, types.ModeShowProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	solutions, err := Document(b, types.ModeHideProblems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wrapped statement: present in full, absent from solutions-only.
	if !strings.Contains(full, "square root of 2") {
		t.Error("full variant missing wrapped statement")
	}
	for _, fragment := range []string{"square root of 2", "Prove that"} {
		if strings.Contains(solutions, fragment) {
			t.Errorf("solutions-only variant must not contain statement fragment %q", fragment)
		}
	}

	// Titles appear in both.
	for _, doc := range []string{full, solutions} {
		for _, title := range []string{"Problem 1.1", "Problem 1.2"} {
			if !strings.Contains(doc, title) {
				t.Errorf("variant missing title %q", title)
			}
		}
	}

	// Unwrapped statement leaks into the solutions-only variant.
	if !strings.Contains(solutions, "e is irrational") {
		t.Error("unwrapped content should appear in the solutions-only variant")
	}

	// Solutions are pass-through and appear in both.
	for _, doc := range []string{full, solutions} {
		if !strings.Contains(doc, "lowest terms") || !strings.Contains(doc, "series for e") {
			t.Error("variant missing solution text")
		}
	}
}

func TestDocumentDeterministic(t *testing.T) {
	b := testBook()
	for _, mode := range types.Modes() {
		first, err := Document(b, mode)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Document(b, mode)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("rendering %s twice produced different bytes", mode)
		}
	}
}

func TestDocumentEmptyBook(t *testing.T) {
	b := &types.Book{Manifest: types.Manifest{Title: "Empty Book", OutputBase: "empty"}}
	for _, mode := range types.Modes() {
		doc, err := Document(b, mode)
		if err != nil {
			t.Fatalf("empty book should render under %s: %v", mode, err)
		}
		if !strings.Contains(doc, "Empty Book") || !strings.Contains(doc, "Contents") {
			t.Error("empty book should still carry a title page and contents heading")
		}
	}
}
