package plan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadProgram reads an observing program: one target name per line. Blank
// lines and lines starting with '#' are dropped and the names are sorted
// case-insensitively.
func ReadProgram(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// LoadProgram reads a program file from disk.
func LoadProgram(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()
	return ReadProgram(f)
}
