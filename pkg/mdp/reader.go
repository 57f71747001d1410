package mdp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

const commentDelimiter = ";"

// ReadFile parses the MDP file at path
func ReadFile(path string) (*Settings, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mdp file: %w", err)
	}
	defer f.Close()

	settings, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return settings, nil
}

// Parse reads MDP lines from r. Whitespace is insignificant, everything
// after the first ';' is a comment, and lines without '=' are ignored.
// A repeated key keeps the value of its last occurrence.
func Parse(r io.Reader) (*Settings, error) {
	settings := NewSettings()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}
		settings.Set(key, ParseValue(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// splitLine reduces a raw line to its key and value token
func splitLine(line string) (string, string, bool) {
	line = stripSpace(line)
	if i := strings.Index(line, commentDelimiter); i >= 0 {
		line = line[:i]
	}
	key, value, found := strings.Cut(line, "=")
	if !found || key == "" {
		return "", "", false
	}
	return key, value, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
