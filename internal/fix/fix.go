// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fix rewrites chapter sources to repair authoring slips: bare
// problembox content gets wrapped in a problemstatement region, Solution
// and Proof regions get a closing \qed, and legacy emoji rating
// annotations become \problemrating commands. Fixers that restructure
// content write a .backup of the original first.
package fix

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Result reports what a fixer did to one file.
type Result struct {
	// File is the chapter source path.
	File string

	// Changed reports whether the file was rewritten.
	Changed bool

	// Backup is the path of the pre-change copy, empty when no backup
	// was written.
	Backup string
}

const (
	beginStatement = `\begin{problemstatement}`
	endStatement   = `\end{problemstatement}`
	endBox         = `\end{problembox}`
)

var beginBoxPattern = regexp.MustCompile(`\\begin\{problembox\}\[([^\]]*)\]`)

// ratingLinePattern matches a \problemrating line kept outside the wrap.
var ratingLinePattern = regexp.MustCompile(`^\s*\\problemrating\{[^}]*\}\{[^}]*\}\s*$`)

// WrapStatements wraps the content of every problembox that has no
// problemstatement region. A leading \problemrating line stays outside the
// wrap. The original file is preserved as <path>.backup before rewriting.
func WrapStatements(path string) (Result, error) {
	res := Result{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(data)

	var out strings.Builder
	rest := src
	changed := false
	for {
		loc := beginBoxPattern.FindStringIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:loc[1]])

		end := strings.Index(rest[loc[1]:], endBox)
		if end < 0 {
			// Leave an unterminated box alone; the scanner reports it.
			out.WriteString(rest[loc[1]:])
			break
		}
		inner := rest[loc[1] : loc[1]+end]
		wrapped := inner
		if !strings.Contains(inner, beginStatement) {
			wrapped = wrapInner(inner)
		}
		out.WriteString(wrapped)
		if wrapped != inner {
			changed = true
		}
		out.WriteString(endBox)
		rest = rest[loc[1]+end+len(endBox):]
	}

	if !changed {
		return res, nil
	}

	backup := path + ".backup"
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return res, fmt.Errorf("writing backup %s: %w", backup, err)
	}
	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Changed = true
	res.Backup = backup
	return res, nil
}

// wrapInner wraps box content in a problemstatement region, keeping any
// leading rating line outside it.
func wrapInner(inner string) string {
	body := strings.TrimSpace(inner)
	if body == "" {
		return inner
	}

	prefix := ""
	lines := strings.SplitN(body, "\n", 2)
	if ratingLinePattern.MatchString(lines[0]) {
		prefix = lines[0] + "\n"
		body = ""
		if len(lines) == 2 {
			body = strings.TrimSpace(lines[1])
		}
	}
	if body == "" {
		return "\n" + prefix
	}
	return "\n" + prefix + beginStatement + "\n" + body + "\n" + endStatement + "\n"
}

var (
	solutionPattern  = regexp.MustCompile(`\{(Solution|Proof):`)
	regionEndPattern = regexp.MustCompile(`^\s*\\(begin\{problembox|section\{|chapter\{|subsection\{)`)
)

// AddQED appends \qed to every Solution and Proof region that does not
// already end with one.
func AddQED(path string) (Result, error) {
	res := Result{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	changed := false
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
			insert := []string{"", `\qed`}
			lines = append(lines[:last+1], append(insert, lines[last+1:]...)...)
			changed = true
			end += len(insert)
		}
		i = end
	}

	if !changed {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Changed = true
	return res, nil
}

// emojiRatingPattern matches the legacy inline emoji rating form.
var emojiRatingPattern = regexp.MustCompile(
	`\\begin\{problembox\}\[([^\]\\]+)\\emoji\{star\}:([0-9.]+)\\emoji\{thinking-face\}:([0-9.]+)\]`)

// RewriteRatings converts legacy emoji rating annotations embedded in a
// problembox title into \problemrating commands after the title.
func RewriteRatings(path string) (Result, error) {
	res := Result{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	updated := emojiRatingPattern.ReplaceAllString(string(data),
		"\\begin{problembox}[$1]\n\\problemrating{$2}{$3}")
	if updated == string(data) {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Changed = true
	return res, nil
}
