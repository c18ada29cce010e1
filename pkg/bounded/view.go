// Package bounded provides constraint-checked sort and search primitives
// over caller-owned buffers. Every operation validates counts, sizes, and
// references against the contract in pkg/constraint before touching a
// single element; violations go to the installed handler and the
// operation returns its sentinel. The library never retains a reference
// past the call and never grows or frees caller storage.
package bounded

import (
	"unsafe"

	"seqguard/pkg/constraint"
)

// View describes a caller-owned buffer: backing storage plus a logical
// element count. Count may be smaller than len(Elems) for partially
// filled tables; it must never be larger.
type View[T any] struct {
	Elems []T
	Count int
}

// Of wraps a slice as a fully-populated view.
func Of[T any](elems []T) View[T] {
	return View[T]{Elems: elems, Count: len(elems)}
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// zero clears a single slot. The context-carrying insert path uses it to
// scrub the destination before copying the key.
func zero[T any](p *T) {
	var z T
	*p = z
}

// validate applies the shared bounds contract, in order: a zero count
// short-circuits to success with no reference touched; then required
// references, then the comparator, then count/size magnitude and the
// backing extent. The first failure is reported and its sentinel
// returned. keyOK is true when the operation has no key argument or the
// key is non-nil.
func (v View[T]) validate(keyOK, haveCmp bool) (empty bool, err error) {
	if v.Count == 0 {
		return true, nil
	}
	if v.Elems == nil {
		return false, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"base != nil", "nil base with count %d", v.Count)
	}
	if !keyOK {
		return false, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"key != nil", "nil key with count %d", v.Count)
	}
	if !haveCmp {
		return false, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"cmp != nil", "nil comparator with count %d", v.Count)
	}
	if v.Count < 0 || v.Count > constraint.MaxMagnitude {
		return false, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
			"0 <= count && count <= MaxMagnitude", "count %d out of range", v.Count)
	}
	if size := sizeOf[T](); size > 0 && v.Count > constraint.MaxMagnitude/size {
		return false, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
			"count*size <= MaxMagnitude", "count %d with element size %d overflows", v.Count, size)
	}
	if v.Count > len(v.Elems) {
		return false, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
			"count <= len(base)", "count %d exceeds backing length %d", v.Count, len(v.Elems))
	}
	return false, nil
}
