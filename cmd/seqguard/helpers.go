package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seqguard/pkg/bounded"
)

// lineOrder carries the comparison options threaded through the
// context-carrying comparator variants.
type lineOrder struct {
	Numeric  bool
	Reverse  bool
	FoldCase bool
}

// compareLines is the one line comparator, shared by sort and lookup.
// Numeric ordering puts non-numeric lines after all numeric ones.
func compareLines(key, elem *string, ctx any) int {
	o, _ := ctx.(lineOrder)

	a, b := *key, *elem
	if o.FoldCase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}

	var c int
	if o.Numeric {
		c = compareNumeric(a, b)
	} else {
		c = strings.Compare(a, b)
	}
	if o.Reverse {
		c = -c
	}
	return c
}

func compareNumeric(a, b string) int {
	fa, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case aerr == nil && berr == nil:
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// sortLines sorts in place under the given order.
func sortLines(lines []string, order lineOrder) error {
	return bounded.SortWith(bounded.Of(lines), bounded.ContextFunc[string](compareLines), order)
}

// lookupLine binary-searches sorted lines for key.
func lookupLine(key string, lines []string, order lineOrder) *string {
	return bounded.SearchWith(&key, bounded.Of(lines), bounded.ContextFunc[string](compareLines), order)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func readFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// linesOrStdin reads the named file, or stdin when path is empty.
func linesOrStdin(path string) ([]string, error) {
	if path == "" {
		return readLines(os.Stdin)
	}
	return readFileLines(path)
}
