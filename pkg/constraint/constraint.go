// Package constraint implements the bounds contract shared by every
// seqguard operation: magnitude limits for counts and sizes, sentinel
// errors, and the process-wide violation handler pipeline.
//
// Operations validate their arguments before touching any element. The
// first failing check is reported synchronously to the installed Handler
// with full call-site context, and the operation then returns its own
// sentinel regardless of what the handler did. A legitimate search miss
// is never routed through the handler.
package constraint

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// MaxMagnitude bounds every count, element size, and count*size product
// accepted by the library. Values above it are treated as corruption, not
// as very large inputs.
const MaxMagnitude = int(^uint(0) >> 2)

// Code classifies a violation.
type Code int

const (
	// CodeNone marks the zero Violation.
	CodeNone Code = iota
	// CodeInvalidArgument: a required reference or comparator is nil
	// while the count is positive.
	CodeInvalidArgument
	// CodeRangeViolation: a count or size is negative, exceeds
	// MaxMagnitude or the backing storage, or tokenizer state is
	// internally inconsistent.
	CodeRangeViolation
)

// String returns the short name used in logs.
func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeRangeViolation:
		return "range_violation"
	default:
		return "none"
	}
}

// Sentinel errors returned by operations after the handler has run. The
// handler's behavior never changes which of these the caller sees.
var (
	ErrInvalidArgument = errors.New("seqguard: invalid argument")
	ErrRange           = errors.New("seqguard: range violation")
)

// Err maps a code to its sentinel error.
func (c Code) Err() error {
	if c == CodeRangeViolation {
		return ErrRange
	}
	return ErrInvalidArgument
}

// Violation is the diagnostic record handed to the installed Handler. It
// is call-scoped: handlers must not retain it past the Handle call.
type Violation struct {
	Code     Code
	Message  string
	Expr     string // the literal check that failed, e.g. "count <= MaxMagnitude"
	File     string
	Function string
	Line     int
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s [%s] at %s:%d (%s)",
		v.Code, v.Message, v.Expr, v.File, v.Line, v.Function)
}

// Handler receives violation records. Implementations are invoked from
// every goroutine that calls into the library and must be safe for
// concurrent use.
type Handler interface {
	Handle(v Violation)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(v Violation)

func (f HandlerFunc) Handle(v Violation) { f(v) }

// LogHandler writes violations through a zap logger.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler returns a Handler that logs each violation as a
// structured warning. A nil logger falls back to the global zap logger.
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) Handle(v Violation) {
	logger := h.logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Warn("constraint violation",
		zap.Stringer("code", v.Code),
		zap.String("message", v.Message),
		zap.String("expr", v.Expr),
		zap.String("file", v.File),
		zap.String("function", v.Function),
		zap.Int("line", v.Line),
	)
}

// AbortHandler panics on the first violation, for callers who prefer
// fail-fast semantics over sentinels. The operation's sentinel return is
// never reached.
type AbortHandler struct{}

func (AbortHandler) Handle(v Violation) {
	panic(fmt.Sprintf("seqguard: aborting on %s", v))
}

// Discard drops every violation. Useful for tests that assert sentinel
// returns without log noise.
var Discard Handler = HandlerFunc(func(Violation) {})

var (
	handlerMu sync.RWMutex
	handler   Handler = NewLogHandler(nil)

	lastMu sync.Mutex
	last   Violation
)

// Set installs h as the process-wide violation handler and returns the
// previous one. Passing nil restores the default logging handler.
// Installation is serialized, but replacing the handler while other
// goroutines are mid-Report means either handler may observe the record;
// callers needing a strict cutover must provide their own barrier.
func Set(h Handler) Handler {
	if h == nil {
		h = NewLogHandler(nil)
	}
	handlerMu.Lock()
	prev := handler
	handler = h
	handlerMu.Unlock()
	return prev
}

func current() Handler {
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()
	return h
}

// Last returns the most recent violation record, for diagnostic use.
// The zero Violation (Code CodeNone) means none since ClearLast.
func Last() Violation {
	lastMu.Lock()
	v := last
	lastMu.Unlock()
	return v
}

// ClearLast resets the last-violation indicator.
func ClearLast() {
	lastMu.Lock()
	last = Violation{}
	lastMu.Unlock()
}

// Report builds a violation record, captures the caller's source
// location, invokes the installed handler, and returns the sentinel
// error for code. The expr argument is the literal check that failed.
func Report(code Code, expr, format string, args ...any) error {
	return report(code, 2, expr, format, args...)
}

// ReportDepth is Report with an explicit caller depth, for validation
// helpers that report on behalf of their caller. depth 1 is the caller
// of ReportDepth itself.
func ReportDepth(code Code, depth int, expr, format string, args ...any) error {
	return report(code, depth+1, expr, format, args...)
}

func report(code Code, skip int, expr, format string, args ...any) error {
	v := Violation{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Expr:    expr,
	}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		v.File = file
		v.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			v.Function = fn.Name()
		}
	}

	lastMu.Lock()
	last = v
	lastMu.Unlock()

	current().Handle(v)
	return code.Err()
}
