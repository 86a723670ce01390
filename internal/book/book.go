// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package book loads a book project: the book.yaml manifest plus the
// chapter sources it names. Chapter content is treated as opaque text;
// only the structural problem-block markers are recognized.
package book

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bookforge/pkg/types"
)

const manifestFile = "book.yaml"

// chapterGlob matches chapter sources discovered when the manifest lists none.
const chapterGlob = "ch*.tex"

// LoadManifest reads book.yaml from a project directory. OutputBase defaults
// to the project directory's base name when the manifest omits it.
func LoadManifest(dir string) (types.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return types.Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return types.Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Title == "" {
		return types.Manifest{}, fmt.Errorf("manifest %s has no title", filepath.Join(dir, manifestFile))
	}
	if m.OutputBase == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return types.Manifest{}, fmt.Errorf("resolving project dir: %w", err)
		}
		m.OutputBase = filepath.Base(abs)
	}
	return m, nil
}

// ChapterFiles returns the ordered chapter source paths for a project:
// the manifest's explicit list when present, otherwise ch*.tex in the
// project directory, sorted.
func ChapterFiles(dir string, m types.Manifest) ([]string, error) {
	if len(m.Chapters) > 0 {
		files := make([]string, len(m.Chapters))
		for i, name := range m.Chapters {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("chapter %s: %w", name, err)
			}
			files[i] = path
		}
		return files, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, chapterGlob))
	if err != nil {
		return nil, fmt.Errorf("discovering chapters: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads the manifest and scans every chapter source into the Book
// model. A book with no chapters is valid: both variants then render a
// title page and an empty table of contents.
func Load(dir string) (*types.Book, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	files, err := ChapterFiles(dir, m)
	if err != nil {
		return nil, err
	}

	b := &types.Book{Manifest: m}
	for _, f := range files {
		ch, err := ScanChapter(f)
		if err != nil {
			return nil, err
		}
		b.Chapters = append(b.Chapters, ch)
	}
	return b, nil
}

// SourceDigest computes a SHA-256 digest over the manifest and all chapter
// sources. Two runs over an unchanged tree produce the same digest, so the
// build history can tell whether recorded artifacts still match the sources.
func SourceDigest(dir string, m types.Manifest) (string, error) {
	files, err := ChapterFiles(dir, m)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	paths := append([]string{filepath.Join(dir, manifestFile)}, files...)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("digesting %s: %w", p, err)
		}
		fmt.Fprintf(h, "%s\n%d\n", filepath.Base(p), len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
