package bookforge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AllFiles returns every file in section order.
func (b *BookStructure) AllFiles() []string {
	var files []string
	for _, s := range b.Sections {
		files = append(files, s.Files...)
	}
	return files
}

// CollectBookFiles assembles the ordered markdown file list for an
// export: structure files first, then any extra includes from the
// export config, de-duplicated while preserving first occurrence.
// Either argument may be nil.
func CollectBookFiles(structure *BookStructure, cfg *ExportConfig) []string {
	var files []string
	if structure != nil {
		files = append(files, structure.AllFiles()...)
	}
	if cfg != nil {
		files = append(files, cfg.IncludeMarkdownFiles...)
	}
	return dedupe(files)
}

// dedupe removes duplicates preserving first-occurrence order.
func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := files[:0]
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// MissingFiles returns the subset of files that do not exist on disk,
// in input order. Callers report these as warnings and skip them; a
// missing chapter never aborts the export.
func MissingFiles(files []string) []string {
	var missing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
		}
	}
	return missing
}

// markdownExtensions are the file extensions picked up by directory
// scanning.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// ScanMarkdownFiles walks root and returns every markdown file in
// lexical order. Used when no book structure lists chapters
// explicitly.
func ScanMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if markdownExtensions[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// GenerateStructure builds a book structure from a directory tree: one
// section per directory containing markdown files, named by its path
// relative to root, in lexical order. Files directly under root form
// the leading section named after the root directory.
func GenerateStructure(root string) (*BookStructure, error) {
	files, err := ScanMarkdownFiles(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no markdown files under %s", ErrEmptyStructure, root)
	}

	structure := &BookStructure{}
	index := make(map[string]int)
	for _, f := range files {
		rel, err := filepath.Rel(root, filepath.Dir(f))
		if err != nil {
			rel = "."
		}
		name := rel
		if name == "." {
			name = filepath.Base(root)
		}

		i, ok := index[name]
		if !ok {
			i = len(structure.Sections)
			index[name] = i
			structure.Sections = append(structure.Sections, Section{Name: name})
		}
		structure.Sections[i].Files = append(structure.Sections[i].Files, f)
	}
	return structure, nil
}
