package bounded

import "math/bits"

// Sort sorts the view in place under cmp, ascending. The sort is
// comparison-based and unstable: equal elements may end up in any
// relative order. The return value is only a status; it never depends on
// what cmp returned.
func Sort[T any](view View[T], cmp Func[T]) error {
	empty, err := view.validate(true, cmp != nil)
	if err != nil {
		return err
	}
	if empty || view.Count == 1 {
		return nil
	}
	introSort(view.Elems[:view.Count], cmp, depthLimit(view.Count))
	return nil
}

// SortWith is Sort with a context-carrying comparator. ctx is passed
// through to every comparison unchanged.
func SortWith[T any](view View[T], cmp ContextFunc[T], ctx any) error {
	empty, err := view.validate(true, cmp != nil)
	if err != nil {
		return err
	}
	if empty || view.Count == 1 {
		return nil
	}
	introSort(view.Elems[:view.Count], cmp.bind(ctx), depthLimit(view.Count))
	return nil
}

// depthLimit is 2*ceil(log2(n+1)), the usual introsort recursion budget.
func depthLimit(n int) int {
	return 2 * bits.Len(uint(n))
}

const shortRun = 12

// introSort is median-of-three quicksort that hands short runs to
// insertion sort and falls back to heapsort when the depth budget runs
// out, keeping the worst case at O(n log n).
func introSort[T any](s []T, cmp Func[T], depth int) {
	for len(s) > shortRun {
		if depth == 0 {
			heapSort(s, cmp)
			return
		}
		depth--
		p := partition(s, cmp)
		// Recurse into the smaller half, loop on the larger.
		if p < len(s)-p {
			introSort(s[:p], cmp, depth)
			s = s[p+1:]
		} else {
			introSort(s[p+1:], cmp, depth)
			s = s[:p]
		}
	}
	insertionSort(s, cmp)
}

// partition places the median-of-three pivot at the end, sweeps the rest,
// and returns the pivot's final index.
func partition[T any](s []T, cmp Func[T]) int {
	last := len(s) - 1
	m := median(s, 0, len(s)/2, last, cmp)
	s[m], s[last] = s[last], s[m]

	i := 0
	for j := 0; j < last; j++ {
		if cmp(&s[j], &s[last]) < 0 {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[last] = s[last], s[i]
	return i
}

// median returns the index of the median of s[a], s[b], s[c].
func median[T any](s []T, a, b, c int, cmp Func[T]) int {
	if cmp(&s[b], &s[a]) < 0 {
		a, b = b, a
	}
	if cmp(&s[c], &s[b]) < 0 {
		b = c
		if cmp(&s[b], &s[a]) < 0 {
			b = a
		}
	}
	return b
}

func insertionSort[T any](s []T, cmp Func[T]) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && cmp(&s[j], &s[j-1]) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func heapSort[T any](s []T, cmp Func[T]) {
	for i := len(s)/2 - 1; i >= 0; i-- {
		siftDown(s, i, len(s), cmp)
	}
	for end := len(s) - 1; end > 0; end-- {
		s[0], s[end] = s[end], s[0]
		siftDown(s, 0, end, cmp)
	}
}

func siftDown[T any](s []T, root, end int, cmp Func[T]) {
	for {
		child := 2*root + 1
		if child >= end {
			return
		}
		if child+1 < end && cmp(&s[child], &s[child+1]) < 0 {
			child++
		}
		if cmp(&s[root], &s[child]) >= 0 {
			return
		}
		s[root], s[child] = s[child], s[root]
		root = child
	}
}
