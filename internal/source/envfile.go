package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const maxLineSize = 1 << 20

// ErrInvalidEncoding is returned when an env file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("env file is not valid UTF-8")

// ParseEnvFile reads newline-delimited KEY=VALUE pairs. Blank lines, lines
// starting with '#', and lines without '=' are skipped. Keys are uppercased;
// the value is the literal text after the first '='.
func ParseEnvFile(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
		}

		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return values, nil
}
