package bounded

// Search performs an iterative halving search for key over a view that
// is already sorted ascending under cmp. That precondition is the
// caller's to uphold; it is not checked. The returned pointer aliases
// the view's storage (no copy); nil means not found.
//
// Among duplicate keys the result is deterministic: the probe sequence
// moves the base one past a too-small candidate and shrinks the window
// by one extra slot on that branch only, so a given input always yields
// the same element. For [1,2,2,2,3] and key 2 the first probe lands on
// index 2 and that exact element is returned. Do not replace this with a
// symmetric halving scheme; it would change which duplicate is found.
func Search[T any](key *T, view View[T], cmp Func[T]) *T {
	empty, err := view.validate(key != nil, cmp != nil)
	if err != nil || empty {
		return nil
	}
	return search(key, view.Elems[:view.Count], cmp)
}

// SearchWith is Search with a context-carrying comparator.
func SearchWith[T any](key *T, view View[T], cmp ContextFunc[T], ctx any) *T {
	empty, err := view.validate(key != nil, cmp != nil)
	if err != nil || empty {
		return nil
	}
	return search(key, view.Elems[:view.Count], cmp.bind(ctx))
}

func search[T any](key *T, s []T, cmp Func[T]) *T {
	base := 0
	for lim := len(s); lim != 0; lim >>= 1 {
		i := base + lim>>1
		c := cmp(key, &s[i])
		if c == 0 {
			return &s[i]
		}
		if c > 0 {
			base = i + 1
			lim--
		}
	}
	return nil
}
