// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension resolves the given path to a flat, deduplicated list
// of files ending with the specified extension. A file path is returned as
// is when it matches; a directory is walked recursively.
func FindFilesByExtension(path string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if strings.HasSuffix(path, extension) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	seen := make(map[string]struct{})
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			if _, wasSeen := seen[p]; !wasSeen {
				files = append(files, p)
				seen[p] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
