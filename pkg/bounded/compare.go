package bounded

// Func is a three-way comparator. It receives the search key (or, during
// sorting, the candidate element) first and the probed element second,
// and returns a negative, zero, or positive value for less-than, equal,
// and greater-than. Both pointers alias caller storage and must not be
// retained.
type Func[T any] func(key, elem *T) int

// ContextFunc is the context-carrying comparator shape. The opaque ctx
// value supplied to the operation is threaded unchanged into every
// invocation; the library never copies, mutates, or retains it.
type ContextFunc[T any] func(key, elem *T, ctx any) int

// bind adapts a ContextFunc to the plain shape by closing over ctx.
func (f ContextFunc[T]) bind(ctx any) Func[T] {
	return func(key, elem *T) int {
		return f(key, elem, ctx)
	}
}

// Ordered returns a comparator for the built-in ordered types.
func Ordered[T interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}]() Func[T] {
	return func(key, elem *T) int {
		switch {
		case *key < *elem:
			return -1
		case *key > *elem:
			return 1
		default:
			return 0
		}
	}
}
