package constraint

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureHandler records every violation it sees.
type captureHandler struct {
	mu   sync.Mutex
	seen []Violation
}

func (h *captureHandler) Handle(v Violation) {
	h.mu.Lock()
	h.seen = append(h.seen, v)
	h.mu.Unlock()
}

func (h *captureHandler) all() []Violation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Violation(nil), h.seen...)
}

func TestReportInvokesInstalledHandler(t *testing.T) {
	rec := &captureHandler{}
	prev := Set(rec)
	defer Set(prev)
	ClearLast()

	err := Report(CodeRangeViolation, "count <= MaxMagnitude", "count %d out of range", 99)
	require.ErrorIs(t, err, ErrRange)

	seen := rec.all()
	require.Len(t, seen, 1)
	v := seen[0]
	assert.Equal(t, CodeRangeViolation, v.Code)
	assert.Equal(t, "count <= MaxMagnitude", v.Expr)
	assert.Equal(t, "count 99 out of range", v.Message)
	assert.Contains(t, v.File, "constraint_test.go")
	assert.Contains(t, v.Function, "TestReportInvokesInstalledHandler")
	assert.Greater(t, v.Line, 0)
}

func TestReportSentinelIndependentOfHandler(t *testing.T) {
	// A handler that returns normally must not change the sentinel.
	prev := Set(Discard)
	defer Set(prev)

	err := Report(CodeInvalidArgument, "key != nil", "nil key")
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = Report(CodeRangeViolation, "rem >= 0", "negative remainder")
	require.ErrorIs(t, err, ErrRange)
}

func TestSetReturnsPreviousAndNilRestoresDefault(t *testing.T) {
	rec := &captureHandler{}
	orig := Set(rec)
	got := Set(orig)
	assert.Same(t, rec, got.(*captureHandler))

	// nil restores the logging default rather than installing nil.
	prev := Set(nil)
	defer Set(prev)
	_, ok := current().(*LogHandler)
	assert.True(t, ok)
}

func TestLastViolationBookkeeping(t *testing.T) {
	prev := Set(Discard)
	defer Set(prev)

	ClearLast()
	assert.Equal(t, CodeNone, Last().Code)

	_ = Report(CodeInvalidArgument, "table != nil", "nil table")
	v := Last()
	assert.Equal(t, CodeInvalidArgument, v.Code)
	assert.Equal(t, "table != nil", v.Expr)

	ClearLast()
	assert.Equal(t, Violation{}, Last())
}

func TestLogHandlerFields(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := Set(NewLogHandler(zap.New(core)))
	defer Set(prev)

	_ = Report(CodeRangeViolation, "len(delims) > 0", "empty delimiter set")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "constraint violation", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "range_violation", fields["code"])
	assert.Equal(t, "len(delims) > 0", fields["expr"])
	assert.Equal(t, "empty delimiter set", fields["message"])
}

func TestAbortHandlerPanics(t *testing.T) {
	prev := Set(AbortHandler{})
	defer Set(prev)

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected AbortHandler to panic")
		msg, ok := r.(string)
		require.True(t, ok)
		assert.Contains(t, msg, "seqguard: aborting on invalid_argument")
		assert.Contains(t, msg, "cmp != nil")
	}()
	_ = Report(CodeInvalidArgument, "cmp != nil", "nil comparator")
}

func TestConcurrentReportAndRead(t *testing.T) {
	rec := &captureHandler{}
	prev := Set(rec)
	defer Set(prev)

	const goroutines = 16
	const perG = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				_ = Report(CodeRangeViolation, "count <= MaxMagnitude", "concurrent")
				_ = Last()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, rec.all(), goroutines*perG)
}

func TestViolationString(t *testing.T) {
	v := Violation{
		Code:     CodeInvalidArgument,
		Message:  "nil key",
		Expr:     "key != nil",
		File:     "bsearch.go",
		Function: "bounded.Search",
		Line:     42,
	}
	s := v.String()
	for _, want := range []string{"invalid_argument", "nil key", "key != nil", "bsearch.go:42", "bounded.Search"} {
		assert.True(t, strings.Contains(s, want), "missing %q in %q", want, s)
	}
}
