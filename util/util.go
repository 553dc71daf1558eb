package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsMidiPath reports whether path has a Standard MIDI File extension.
func IsMidiPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

// GatherMidiPaths returns path itself when it names a file, or every MIDI
// file beneath it when it names a directory. maxNum of 0 means no limit.
func GatherMidiPaths(path string, maxNum int) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %v: %w", s, err)
		}
		if d.IsDir() || !IsMidiPath(s) {
			return nil
		}
		if maxNum > 0 && len(res) >= maxNum {
			return fs.SkipAll
		}
		res = append(res, s)
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, err
	}
	sort.Strings(res)
	return res, nil
}
