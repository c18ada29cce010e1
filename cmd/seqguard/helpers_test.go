package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareLines(t *testing.T) {
	cases := []struct {
		name  string
		a, b  string
		order lineOrder
		want  int // sign only
	}{
		{"lexicographic", "apple", "banana", lineOrder{}, -1},
		{"reverse flips", "apple", "banana", lineOrder{Reverse: true}, 1},
		{"numeric", "9", "10", lineOrder{Numeric: true}, -1},
		{"numeric with spaces", " 2 ", "2", lineOrder{Numeric: true}, 0},
		{"non-numeric sorts after numeric", "abc", "10", lineOrder{Numeric: true}, 1},
		{"fold case", "ABC", "abc", lineOrder{FoldCase: true}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compareLines(&tc.a, &tc.b, tc.order)
			switch {
			case tc.want < 0:
				assert.Negative(t, got)
			case tc.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestSortLines(t *testing.T) {
	lines := []string{"pear", "apple", "orange"}
	require.NoError(t, sortLines(lines, lineOrder{}))
	assert.Equal(t, []string{"apple", "orange", "pear"}, lines)

	nums := []string{"10", "2", "33", "4"}
	require.NoError(t, sortLines(nums, lineOrder{Numeric: true}))
	assert.Equal(t, []string{"2", "4", "10", "33"}, nums)
}

func TestLookupLine(t *testing.T) {
	lines := []string{"cherry", "apple", "banana"}
	order := lineOrder{}
	require.NoError(t, sortLines(lines, order))

	p := lookupLine("banana", lines, order)
	require.NotNil(t, p)
	assert.Equal(t, "banana", *p)

	assert.Nil(t, lookupLine("durian", lines, order))
}

func TestLookupLineFoldCase(t *testing.T) {
	lines := []string{"Alpha", "beta", "Gamma"}
	order := lineOrder{FoldCase: true}
	require.NoError(t, sortLines(lines, order))

	p := lookupLine("GAMMA", lines, order)
	require.NotNil(t, p)
	assert.Equal(t, "Gamma", *p)
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("one\ntwo\nthree\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	lines, err = readLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
