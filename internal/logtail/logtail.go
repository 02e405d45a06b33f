package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineBytes = 1024 * 1024

// Filter selects log lines. Empty fields match everything.
type Filter struct {
	// Contains keeps lines holding this substring, compared case-insensitively.
	Contains string
}

func (f Filter) match(line string) bool {
	if f.Contains == "" {
		return true
	}
	return strings.Contains(strings.ToLower(line), strings.ToLower(f.Contains))
}

// Read returns at most maxLines matching lines from the end of the file at
// path. A missing file yields no lines.
func Read(path string, maxLines int, f Filter) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	return tail(file, maxLines, f)
}

func tail(r io.Reader, maxLines int, f Filter) ([]string, error) {
	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	count, next := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if !f.match(line) {
			continue
		}
		ring[next] = line
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < maxLines {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := range lines {
		lines[i] = ring[(next+i)%maxLines]
	}
	return lines, nil
}
