// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package book

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/bookforge/pkg/types"
)

// Structural markers recognized in chapter sources. Everything between
// markers is captured verbatim and never interpreted.
var (
	beginBoxPattern = regexp.MustCompile(`\\begin\{problembox\}\[([^\]]*)\]`)
	chapterPattern  = regexp.MustCompile(`\\chapter\{([^}]*)\}`)
	ratingPattern   = regexp.MustCompile(`\\problemrating\{([^}]*)\}\{([^}]*)\}`)
)

const (
	endBoxMarker         = `\end{problembox}`
	beginStatementMarker = `\begin{problemstatement}`
	endStatementMarker   = `\end{problemstatement}`
)

// ScanChapter reads a chapter source and locates its problem blocks.
// Content outside blocks, and free content inside blocks, passes through
// untouched; only the problembox, problemstatement, problemrating, and
// chapter markers are structural.
func ScanChapter(path string) (types.Chapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Chapter{}, fmt.Errorf("reading chapter: %w", err)
	}
	return scanContent(string(data), path)
}

func scanContent(src, file string) (types.Chapter, error) {
	ch := types.Chapter{File: file, Title: chapterTitle(src, file)}

	offset := 0
	rest := src
	for {
		loc := beginBoxPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if loc[0] > 0 {
			ch.Items = append(ch.Items, types.ChapterItem{Text: rest[:loc[0]]})
		}

		title := rest[loc[2]:loc[3]]
		line := lineAt(src, offset+loc[0])

		end := strings.Index(rest[loc[1]:], endBoxMarker)
		if end < 0 {
			return ch, fmt.Errorf("%s:%d: problembox %q is never closed", file, line, title)
		}

		inner := rest[loc[1] : loc[1]+end]
		block, err := parseBlock(inner, title, file, line)
		if err != nil {
			return ch, err
		}
		ch.Items = append(ch.Items, types.ChapterItem{Block: block})

		consumed := loc[1] + end + len(endBoxMarker)
		offset += consumed
		rest = rest[consumed:]
	}
	if rest != "" {
		ch.Items = append(ch.Items, types.ChapterItem{Text: rest})
	}
	return ch, nil
}

// parseBlock splits the inside of a problembox into its statement region,
// rating annotation, and remaining free content.
func parseBlock(inner, title, file string, line int) (*types.ProblemBlock, error) {
	b := &types.ProblemBlock{Title: title, File: file, Line: line}

	free := inner
	if start := strings.Index(free, beginStatementMarker); start >= 0 {
		after := start + len(beginStatementMarker)
		end := strings.Index(free[after:], endStatementMarker)
		if end < 0 {
			return nil, fmt.Errorf("%s:%d: problemstatement in %q is never closed", file, line, title)
		}
		b.Wrapped = true
		b.Statement = strings.TrimSpace(free[after : after+end])
		free = free[:start] + free[after+end+len(endStatementMarker):]
	}

	if m := ratingPattern.FindStringSubmatch(free); m != nil {
		b.Rating = &types.Rating{Importance: m[1], Difficulty: m[2]}
		free = strings.Replace(free, m[0], "", 1)
	}

	b.FreeContent = strings.TrimSpace(free)
	return b, nil
}

// chapterTitle returns the first \chapter heading, or the file's base name
// when the source has none.
func chapterTitle(src, file string) string {
	if m := chapterPattern.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	base := file
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".tex")
}

// lineAt returns the 1-based line number of a byte offset in src.
func lineAt(src string, off int) int {
	return 1 + strings.Count(src[:off], "\n")
}
