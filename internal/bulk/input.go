package bulk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadInputs returns the non-blank lines of r that do not start with '#',
// trimmed and in their original order. Duplicates are kept here; a run
// reports the second occurrence as an output collision instead of
// harvesting it again.
func ReadInputs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var inputs []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return inputs, nil
}

// ReadInputFile opens path and calls ReadInputs.
func ReadInputFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input list: %w", err)
	}
	defer f.Close()
	return ReadInputs(f)
}
