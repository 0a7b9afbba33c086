// Package vault handles filesystem access to an Obsidian vault: walking its
// Markdown files and writing changes back safely.
package vault

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// File describes one Markdown file found in a vault.
type File struct {
	// Path is the absolute path.
	Path string
	// RelPath is the path relative to the walk root, with forward slashes.
	RelPath string
	Size    int64
	ModTime time.Time
}

// WalkResult is delivered to the walk handler: a file, or an error for a
// path that could not be visited.
type WalkResult struct {
	File
	Error error
}

// WalkMarkdownFiles walks root in lexical order and calls handler for every
// Markdown file. Hidden directories are skipped entirely; session backups
// live under one, and those copies must never be scanned as vault content.
// The extension check is case-insensitive, matching how note duplicates are
// detected.
func WalkMarkdownFiles(root string, handler func(result WalkResult) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			rel, _ := filepath.Rel(root, path)
			return handler(WalkResult{
				File:  File{Path: path, RelPath: filepath.ToSlash(rel)},
				Error: err,
			})
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		file := File{Path: path, RelPath: filepath.ToSlash(rel)}

		info, err := d.Info()
		if err != nil {
			return handler(WalkResult{File: file, Error: err})
		}
		file.Size = info.Size()
		file.ModTime = info.ModTime()

		return handler(WalkResult{File: file})
	})
}

// CollectMarkdownFiles walks root and returns all Markdown files, plus any
// paths that errored.
func CollectMarkdownFiles(root string) ([]File, []WalkResult, error) {
	var files []File
	var failed []WalkResult

	err := WalkMarkdownFiles(root, func(result WalkResult) error {
		if result.Error != nil {
			failed = append(failed, result)
		} else {
			files = append(files, result.File)
		}
		return nil
	})

	return files, failed, err
}
