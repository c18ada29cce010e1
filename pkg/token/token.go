// Package token implements a resumable, bounds-accounted splitter over
// NUL-terminated byte buffers.
//
// Tokenize mirrors classic sequential tokenizing: delimiters are
// overwritten in place with a terminator, consecutive delimiters yield
// no empty tokens, and the caller threads a Cursor plus a remaining-byte
// counter between calls. Scan is the separately named non-mutating
// variant; it walks the same state machine but returns sub-slices and
// leaves the buffer untouched. Neither variant synchronizes: concurrent
// calls sharing a cursor/buffer pair must be serialized by the caller.
package token

import (
	"strings"

	"seqguard/pkg/constraint"
)

// Terminator ends every buffer handed to the tokenizer. The initial call
// fails with a range violation if it is absent.
const Terminator byte = 0x00

// Cursor is the opaque resume point carried between calls. Its zero
// value is dormant; the tokenizer clears it when tokenization completes
// or errors.
type Cursor struct {
	rest []byte
}

// Active reports whether the cursor still points into a buffer.
func (c *Cursor) Active() bool {
	return c != nil && c.rest != nil
}

func (c *Cursor) clear() {
	c.rest = nil
}

// Tokenize returns the next token of a NUL-terminated buffer, splitting
// on the bytes in delims and overwriting each consumed delimiter in
// place with Terminator. The buffer must therefore be writable.
//
// The first call passes the buffer; resume calls pass nil and reuse the
// cursor. rem tracks the unconsumed bytes including the terminator and
// is owned by the caller between calls; the tokenizer treats any
// disagreement between *rem and the terminator as evidence that the
// buffer was mutated out from under it, reports a range violation, and
// clears the cursor. A nil return with a cleared cursor and *rem == 0 is
// the normal end of input.
func Tokenize(buf []byte, rem *int, delims string, cur *Cursor) []byte {
	tok, _ := next(buf, rem, delims, cur, true)
	return tok
}

// Scan is the non-mutating variant of Tokenize: identical state machine,
// identical violations, but delimiters are left in place and tokens are
// returned as sub-slices of the original buffer.
func Scan(buf []byte, rem *int, delims string, cur *Cursor) []byte {
	tok, _ := next(buf, rem, delims, cur, false)
	return tok
}

// next walks one step of the tokenizer state machine. A nil token with a
// nil error is the normal end of input; a non-nil error means a
// violation was reported.
func next(buf []byte, rem *int, delims string, cur *Cursor, overwrite bool) ([]byte, error) {
	if rem == nil {
		return nil, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"rem != nil", "nil remaining-length reference")
	}
	if cur == nil {
		return nil, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"cursor != nil", "nil cursor reference")
	}
	if delims == "" {
		return nil, constraint.ReportDepth(constraint.CodeInvalidArgument, 2,
			"len(delims) > 0", "empty delimiter set")
	}

	var p []byte
	switch {
	case buf != nil:
		n, err := boundedLength(buf)
		if err != nil {
			cur.clear()
			return nil, err
		}
		*rem = n + 1
		p = buf
	case cur.rest != nil:
		p = cur.rest
	default:
		if *rem != 0 {
			// Dormant cursor but bytes allegedly outstanding: the
			// caller's state is inconsistent.
			return nil, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
				"rem == 0", "dormant cursor with %d bytes outstanding", *rem)
		}
		return nil, nil
	}

	// Skip phase: drop leading delimiters.
	for {
		if *rem <= 0 || len(p) == 0 {
			cur.clear()
			return nil, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
				"rem > 0", "ran out of bytes before the terminator")
		}
		if p[0] == Terminator {
			// Nothing but delimiters left: normal termination.
			cur.clear()
			*rem = 0
			return nil, nil
		}
		if strings.IndexByte(delims, p[0]) < 0 {
			break
		}
		*rem--
		p = p[1:]
	}

	// Token phase: consume until a delimiter or the terminator.
	start := p
	n := 0
	for {
		if *rem <= 0 || len(p) == 0 {
			cur.clear()
			return nil, constraint.ReportDepth(constraint.CodeRangeViolation, 2,
				"rem > 0", "unterminated token")
		}
		c := p[0]
		if c == Terminator {
			// Park on the terminator; the next resume call ends
			// tokenization normally.
			cur.rest = p
			return start[:n], nil
		}
		if strings.IndexByte(delims, c) >= 0 {
			if overwrite {
				p[0] = Terminator
			}
			*rem--
			cur.rest = p[1:]
			return start[:n], nil
		}
		*rem--
		p = p[1:]
		n++
	}
}

// boundedLength scans for the terminator, refusing buffers longer than
// the contract allows. The violation is reported on behalf of the
// exported entry point.
func boundedLength(buf []byte) (int, error) {
	limit := len(buf)
	if limit > constraint.MaxMagnitude {
		limit = constraint.MaxMagnitude
	}
	for i := 0; i < limit; i++ {
		if buf[i] == Terminator {
			return i, nil
		}
	}
	return 0, constraint.ReportDepth(constraint.CodeRangeViolation, 3,
		"indexof(terminator) >= 0", "no terminator within %d bytes", limit)
}

// Collect runs Tokenize to completion and returns every token, in
// order. The buffer is consumed (delimiters overwritten) exactly as by
// repeated Tokenize calls. err is non-nil if tokenization ended on a
// violation rather than at the terminator.
func Collect(buf []byte, delims string) ([][]byte, error) {
	return collect(buf, delims, true)
}

// CollectScan is Collect over Scan: all tokens, no mutation.
func CollectScan(buf []byte, delims string) ([][]byte, error) {
	return collect(buf, delims, false)
}

func collect(buf []byte, delims string, overwrite bool) ([][]byte, error) {
	var (
		cur Cursor
		rem int
		out [][]byte
	)
	for {
		tok, err := next(buf, &rem, delims, &cur, overwrite)
		if err != nil {
			return out, err
		}
		if tok == nil {
			return out, nil
		}
		out = append(out, tok)
		buf = nil
	}
}
