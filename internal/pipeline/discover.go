package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Discover lists the immediate entries of dir, sorted by name. Every entry is
// assumed to be an archive unless it matches an exclude pattern. ignoreFile,
// when set, names a file of gitignore-style patterns appended to exclude; if
// that file sits in dir it is not listed.
func Discover(dir string, exclude []string, ignoreFile string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotADirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list source directory %s: %w", dir, err)
	}
	patterns, err := excludePatterns(exclude, ignoreFile)
	if err != nil {
		return nil, err
	}
	var matcher gitignore.Matcher
	if len(patterns) > 0 {
		matcher = gitignore.NewMatcher(patterns)
	}
	var ignoreInfo fs.FileInfo
	if ignoreFile != "" {
		ignoreInfo, _ = os.Stat(ignoreFile)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if ignoreInfo != nil {
			if ei, err := e.Info(); err == nil && os.SameFile(ei, ignoreInfo) {
				continue
			}
		}
		if matcher != nil && matcher.Match([]string{name}, e.IsDir()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// excludePatterns merges configured patterns with the ignore file, the file
// taking precedence as it is read last.
func excludePatterns(exclude []string, ignoreFile string) ([]gitignore.Pattern, error) {
	var patterns []gitignore.Pattern
	for _, line := range exclude {
		if p, ok := parsePattern(line); ok {
			patterns = append(patterns, p)
		}
	}
	if ignoreFile == "" {
		return patterns, nil
	}
	b, err := os.ReadFile(ignoreFile)
	if err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if p, ok := parsePattern(sc.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ignore file %s: %w", ignoreFile, err)
	}
	return patterns, nil
}

func parsePattern(line string) (gitignore.Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}
	return gitignore.ParsePattern(line, nil), true
}
