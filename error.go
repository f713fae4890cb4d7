package rpn

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	// StackUnderflow means an operator or the final extraction needed an
	// operand that was not present.
	StackUnderflow ErrorKind = iota + 1
	// InvalidToken means a token is neither an operator nor an integer.
	InvalidToken
	// DivisionByZero means a division had a zero divisor.
	DivisionByZero
	// MalformedExpression means operands were left over after evaluation.
	MalformedExpression
	// IntegerOverflow means a literal or an intermediate result does not fit
	// in 64 bits.
	IntegerOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case StackUnderflow:
		return "StackUnderflow"
	case InvalidToken:
		return "InvalidToken"
	case DivisionByZero:
		return "DivisionByZero"
	case MalformedExpression:
		return "MalformedExpression"
	case IntegerOverflow:
		return "IntegerOverflow"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(s string) (ErrorKind, bool) {
	for k := StackUnderflow; k <= IntegerOverflow; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// EvalError is the error returned by Evaluate.
type EvalError struct {
	Kind ErrorKind
	// Token is the offending token, empty for failures at the final pop.
	Token string
	// Index is the 0-based position of Token in the expression, or -1.
	Index int
	// Depth is the number of operands left on the stack, set for
	// MalformedExpression.
	Depth int
}

// Sentinels for use with errors.Is. Any *EvalError matches the sentinel of
// its kind.
var (
	ErrStackUnderflow      = &EvalError{Kind: StackUnderflow, Index: -1}
	ErrInvalidToken        = &EvalError{Kind: InvalidToken, Index: -1}
	ErrDivisionByZero      = &EvalError{Kind: DivisionByZero, Index: -1}
	ErrMalformedExpression = &EvalError{Kind: MalformedExpression, Index: -1}
	ErrIntegerOverflow     = &EvalError{Kind: IntegerOverflow, Index: -1}
)

func (err *EvalError) Error() string {
	switch err.Kind {
	case StackUnderflow:
		if err.Token == "" {
			return "rpn: stack underflow: no result"
		}
		return fmt.Sprintf("rpn: stack underflow: %q at token %d needs two operands", err.Token, err.Index)
	case InvalidToken:
		return fmt.Sprintf("rpn: invalid token %q at token %d", err.Token, err.Index)
	case DivisionByZero:
		return fmt.Sprintf("rpn: division by zero at token %d", err.Index)
	case MalformedExpression:
		return fmt.Sprintf("rpn: malformed expression: %d operands left on the stack", err.Depth)
	case IntegerOverflow:
		return fmt.Sprintf("rpn: integer overflow: %q at token %d", err.Token, err.Index)
	default:
		return "rpn: " + err.Kind.String()
	}
}

// Is reports whether target is an *EvalError of the same kind.
func (err *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == err.Kind
}
