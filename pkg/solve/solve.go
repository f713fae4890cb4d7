// Package solve adapts the RPN evaluator to a C-style calling convention:
// a borrowed text buffer in, a single integer output slot, and a status code.
package solve

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/speakeasy-api/rpn"
)

// Status is the code returned across the foreign boundary.
type Status int32

const (
	StatusOK Status = iota
	StatusNullPointer
	StatusDecodeError
	StatusStackUnderflow
	StatusInvalidToken
	StatusDivisionByZero
	StatusMalformed
	StatusOverflow
	// StatusInternal reports a failure that is not an input error.
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNullPointer:
		return "null pointer"
	case StatusDecodeError:
		return "decode error"
	case StatusStackUnderflow:
		return "stack underflow"
	case StatusInvalidToken:
		return "invalid token"
	case StatusDivisionByZero:
		return "division by zero"
	case StatusMalformed:
		return "malformed expression"
	case StatusOverflow:
		return "overflow"
	case StatusInternal:
		return "internal error"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// ErrNullPointer is returned when the text or the output location is missing.
var ErrNullPointer = errors.New("solve: null pointer")

// ErrResultRange is returned when a result does not fit the C int output.
var ErrResultRange = errors.New("solve: result out of range for int32")

// TextDecodingError reports input bytes that are not valid UTF-8. It is
// distinct from evaluation errors.
type TextDecodingError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (err *TextDecodingError) Error() string {
	return fmt.Sprintf("solve: invalid UTF-8 at byte %d", err.Offset)
}

// StatusOf maps an error to its status code.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var decodeErr *TextDecodingError
	if errors.As(err, &decodeErr) {
		return StatusDecodeError
	}
	if errors.Is(err, ErrNullPointer) {
		return StatusNullPointer
	}
	if errors.Is(err, ErrResultRange) {
		return StatusOverflow
	}
	var evalErr *rpn.EvalError
	if errors.As(err, &evalErr) {
		switch evalErr.Kind {
		case rpn.StackUnderflow:
			return StatusStackUnderflow
		case rpn.InvalidToken:
			return StatusInvalidToken
		case rpn.DivisionByZero:
			return StatusDivisionByZero
		case rpn.MalformedExpression:
			return StatusMalformed
		case rpn.IntegerOverflow:
			return StatusOverflow
		}
	}
	return StatusInternal
}

// Solver evaluates expressions handed over the foreign boundary.
type Solver struct {
	Logger  rpn.Logger
	Options rpn.Options
}

// NewSolver returns a Solver that logs failures to logger.
func NewSolver(logger rpn.Logger, opts rpn.Options) *Solver {
	if logger == nil {
		logger = rpn.NopLogger()
	}
	return &Solver{Logger: logger, Options: opts}
}

var defaultSolver = NewSolver(rpn.NewLogger(rpn.LevelWarn, nil), rpn.DefaultOptions())

// Solve evaluates line with the default solver, which logs failures to
// stderr.
func Solve(line []byte, out *int32) Status {
	return defaultSolver.Solve(line, out)
}

// Solve evaluates the text in line and stores the result in out.
//
// A nil line or out models a null pointer. line is read up to its first NUL
// byte and is not retained. out is written exactly once on success and left
// untouched on failure.
func (s *Solver) Solve(line []byte, out *int32) Status {
	v, err := s.eval(line, out)
	if err != nil {
		status := StatusOf(err)
		fields := map[string]any{"status": int32(status)}
		var evalErr *rpn.EvalError
		if errors.As(err, &evalErr) {
			fields["kind"] = evalErr.Kind
		}
		s.Logger.With(fields).Warnf("%v", err)
		return status
	}
	*out = v
	return StatusOK
}

func (s *Solver) eval(line []byte, out *int32) (int32, error) {
	if line == nil || out == nil {
		return 0, ErrNullPointer
	}
	expr, err := decode(line)
	if err != nil {
		return 0, err
	}
	v, err := rpn.EvaluateWithOptions(expr, s.Options)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrResultRange, v)
	}
	return int32(v), nil
}

// decode converts a NUL-terminated buffer into a validated string.
func decode(line []byte) (string, error) {
	if i := bytes.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}
	if !utf8.Valid(line) {
		return "", &TextDecodingError{Offset: invalidOffset(line)}
	}
	return string(line), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
