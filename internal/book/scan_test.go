// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package book

import (
	"strings"
	"testing"
)

func TestScanContent(t *testing.T) {
	src := `\chapter{Sequences}
Intro text before any problem.

\begin{problembox}[Problem 2.1]
\problemrating{4}{3.5}
\begin{problemstatement}
Show that every convergent sequence is bounded.
\end{problemstatement}
\end{problembox}

{Solution: } Bound the tail, then take the max.

\begin{problembox}[Problem 2.2]
Show that the converse fails.
\end{problembox}

{Solution: } Consider an unbounded counterexample.
`

	ch, err := scanContent(src, "ch2.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.Title != "Sequences" {
		t.Errorf("chapter title = %q, want %q", ch.Title, "Sequences")
	}

	blocks := ch.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	p1 := blocks[0]
	if p1.Title != "Problem 2.1" {
		t.Errorf("first title = %q", p1.Title)
	}
	if !p1.Wrapped {
		t.Error("first block should be wrapped")
	}
	if !strings.Contains(p1.Statement, "convergent sequence is bounded") {
		t.Errorf("statement not captured: %q", p1.Statement)
	}
	if p1.Rating == nil || p1.Rating.Importance != "4" || p1.Rating.Difficulty != "3.5" {
		t.Errorf("rating not captured: %+v", p1.Rating)
	}
	if strings.Contains(p1.FreeContent, "convergent") || strings.Contains(p1.FreeContent, "problemrating") {
		t.Errorf("free content should exclude statement and rating: %q", p1.FreeContent)
	}

	p2 := blocks[1]
	if p2.Wrapped {
		t.Error("second block should not be wrapped")
	}
	if !strings.Contains(p2.FreeContent, "converse fails") {
		t.Errorf("unwrapped text should land in free content: %q", p2.FreeContent)
	}

	// Pass-through runs carry everything outside the boxes, solutions included.
	var passThrough strings.Builder
	for _, it := range ch.Items {
		if it.Block == nil {
			passThrough.WriteString(it.Text)
		}
	}
	for _, want := range []string{"Intro text", "Bound the tail", "unbounded counterexample"} {
		if !strings.Contains(passThrough.String(), want) {
			t.Errorf("pass-through text missing %q", want)
		}
	}
}

func TestScanContentErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "unclosed problembox",
			src:     "\\begin{problembox}[P1]\ntext\n",
			wantErr: "never closed",
		},
		{
			name:    "unclosed problemstatement",
			src:     "\\begin{problembox}[P1]\n\\begin{problemstatement}\ntext\n\\end{problembox}\n",
			wantErr: "problemstatement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanContent(tt.src, "ch1.tex")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestScanContentLineNumbers(t *testing.T) {
	src := "line one\nline two\n\\begin{problembox}[P]\n\\end{problembox}\n"
	ch, err := scanContent(src, "ch1.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := ch.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Line != 3 {
		t.Errorf("block line = %d, want 3", blocks[0].Line)
	}
}

func TestChapterTitleFallback(t *testing.T) {
	ch, err := scanContent("no heading here\n", "path/to/ch7.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Title != "ch7" {
		t.Errorf("fallback title = %q, want %q", ch.Title, "ch7")
	}
}
