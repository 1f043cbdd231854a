// Package flatfile implements the line-oriented snapshot files that back
// every persisted collection in the system. A save replaces the whole file
// (snapshot overwrite, no append); a missing file reads as an empty
// snapshot. Field sanitization guarantees that lines written here always
// split back into the same number of comma-separated fields.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var fieldReplacer = strings.NewReplacer(",", " ", "\r", "", "\n", " ")

// Sanitize strips field separators and line terminators from a free-text
// field so the emitted record keeps a well-formed field count.
func Sanitize(field string) string {
	return strings.TrimSpace(fieldReplacer.Replace(field))
}

// WriteSnapshot truncates path and writes every line in order, creating
// parent directories first.
func WriteSnapshot(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", path, err)
	}
	return nil
}

// ReadLines returns the lines of path in file order. A missing file yields
// no lines and no error.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return lines, nil
}
