package bounded

import "seqguard/pkg/constraint"

// Find scans the view in index order and returns a pointer to the first
// (leftmost) element for which cmp reports equality, or nil on a miss.
// The view and its count are never mutated. A miss is a normal outcome,
// not a violation.
func Find[T any](key *T, view View[T], cmp Func[T]) *T {
	empty, err := view.validate(key != nil, cmp != nil)
	if err != nil || empty {
		return nil
	}
	return find(key, view.Elems[:view.Count], cmp)
}

// FindWith is Find with a context-carrying comparator.
func FindWith[T any](key *T, view View[T], cmp ContextFunc[T], ctx any) *T {
	empty, err := view.validate(key != nil, cmp != nil)
	if err != nil || empty {
		return nil
	}
	return find(key, view.Elems[:view.Count], cmp.bind(ctx))
}

func find[T any](key *T, s []T, cmp Func[T]) *T {
	for i := range s {
		if cmp(key, &s[i]) == 0 {
			return &s[i]
		}
	}
	return nil
}

// FindOrInsert performs the same leftmost scan over table[:*count] and,
// on a miss, copies *key into table[*count], increments *count, and
// returns the new slot. The table must have spare capacity beyond the
// logical count; the operation never grows storage, so a caller who does
// not know whether the key is present must leave room for one extra
// element. A full table on a miss is a range violation (nil sentinel).
// A zero *count returns nil immediately without touching table or key.
func FindOrInsert[T any](key *T, table []T, count *int, cmp Func[T]) *T {
	s, ok := insertView(key != nil, table, count, cmp != nil)
	if !ok {
		return nil
	}
	if p := find(key, s, cmp); p != nil {
		return p
	}
	return insert(key, table, count, false)
}

// FindOrInsertWith is FindOrInsert with a context-carrying comparator.
// Its insert path zero-fills the destination slot before copying the
// key.
func FindOrInsertWith[T any](key *T, table []T, count *int, cmp ContextFunc[T], ctx any) *T {
	s, ok := insertView(key != nil, table, count, cmp != nil)
	if !ok {
		return nil
	}
	if p := find(key, s, cmp.bind(ctx)); p != nil {
		return p
	}
	return insert(key, table, count, true)
}

// insertView validates the search-or-insert argument set and returns the
// populated prefix to scan. ok is false when the count is zero or any
// check failed (the violation has already been reported).
func insertView[T any](keyOK bool, table []T, count *int, haveCmp bool) ([]T, bool) {
	if count == nil {
		_ = constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"count != nil", "nil count reference")
		return nil, false
	}
	v := View[T]{Elems: table, Count: *count}
	empty, err := v.validate(keyOK, haveCmp)
	if err != nil || empty {
		return nil, false
	}
	return table[:*count], true
}

func insert[T any](key *T, table []T, count *int, scrub bool) *T {
	n := *count
	if n >= len(table) {
		_ = constraint.ReportDepth(constraint.CodeRangeViolation, 2,
			"count < len(table)", "no spare capacity: count %d, table length %d", n, len(table))
		return nil
	}
	slot := &table[n]
	if scrub {
		zero(slot)
	}
	*slot = *key
	*count = n + 1
	return slot
}
