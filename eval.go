package rpn

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Evaluate evaluates a whitespace-separated Reverse Polish Notation
// expression of integers and the operators + - * / with DefaultOptions.
//
// Example:
//
//	v, err := rpn.Evaluate("3 4 + 2 *")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v) // 14
func Evaluate(expr string) (int64, error) {
	return EvaluateWithOptions(expr, DefaultOptions())
}

// EvaluateWithOptions evaluates expr. Evaluation stops at the first error,
// which is always an *EvalError.
func EvaluateWithOptions(expr string, opts Options) (int64, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}

	stack := newOperandStack()
	// strings.Fields never yields empty tokens, so repeated separators are
	// skipped rather than reported.
	for i, tok := range strings.Fields(expr) {
		c, err := classify(tok)
		if err != nil {
			kind := InvalidToken
			if errors.Is(err, strconv.ErrRange) {
				kind = IntegerOverflow
			}
			return 0, &EvalError{Kind: kind, Token: tok, Index: i}
		}
		if c.op == oppush {
			stack.push(c.v)
		} else {
			y, err := stack.pop()
			if err != nil {
				return 0, &EvalError{Kind: StackUnderflow, Token: tok, Index: i}
			}
			x, err := stack.pop()
			if err != nil {
				return 0, &EvalError{Kind: StackUnderflow, Token: tok, Index: i}
			}
			v, kind := apply(c.op, x, y)
			if kind != 0 {
				return 0, &EvalError{Kind: kind, Token: tok, Index: i}
			}
			stack.push(v)
		}
		logger.With(map[string]any{
			"index": i,
			"token": tok,
			"op":    c.OpString(),
			"depth": stack.len(),
		}).Debugf("Token applied")
	}

	v, err := stack.pop()
	if err != nil {
		return 0, &EvalError{Kind: StackUnderflow, Index: -1}
	}
	if n := stack.len(); n > 0 {
		if !opts.AllowLeftover {
			return 0, &EvalError{Kind: MalformedExpression, Index: -1, Depth: n + 1}
		}
		logger.Infof("Ignoring %d leftover operands", n)
	}
	return v, nil
}

// apply computes x op y, reporting a non-zero ErrorKind on failure.
func apply(op opcode, x, y int64) (int64, ErrorKind) {
	switch op {
	case opadd:
		v := x + y
		if (v > x) != (y > 0) {
			return 0, IntegerOverflow
		}
		return v, 0
	case opsub:
		v := x - y
		if (v < x) != (y > 0) {
			return 0, IntegerOverflow
		}
		return v, 0
	case opmul:
		if x == 0 || y == 0 {
			return 0, 0
		}
		v := x * y
		if v/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, IntegerOverflow
		}
		return v, 0
	case opdiv:
		if y == 0 {
			return 0, DivisionByZero
		}
		if x == math.MinInt64 && y == -1 {
			return 0, IntegerOverflow
		}
		return x / y, 0
	default:
		panic(op)
	}
}
