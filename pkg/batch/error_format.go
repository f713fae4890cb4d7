package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/rpn"
)

// FormatEvalError turns an evaluation error into a user-facing message.
// expr is the evaluated expression and is used to point at the failing token.
func FormatEvalError(expr string, err error) string {
	if err == nil {
		return ""
	}

	var e *rpn.EvalError
	if !errors.As(err, &e) {
		return fmt.Sprintf("Evaluation failed: %v\n", err)
	}

	var b strings.Builder
	msg, hint := classifyAndHint(e)
	fmt.Fprintf(&b, "- %s\n", msg)
	if loc := deriveLocation(expr, e); loc != "" {
		fmt.Fprintf(&b, "  Location: %s\n", loc)
	}
	if hint != "" {
		fmt.Fprintf(&b, "  How to fix: %s\n", hint)
	}
	fmt.Fprintf(&b, "  Details: %s\n", strings.TrimPrefix(e.Error(), "rpn: "))
	return b.String()
}

// deriveLocation renders the expression with the failing token bracketed.
func deriveLocation(expr string, e *rpn.EvalError) string {
	if e.Index < 0 {
		return ""
	}
	toks := strings.Fields(expr)
	if e.Index >= len(toks) {
		return ""
	}
	marked := make([]string, len(toks))
	copy(marked, toks)
	marked[e.Index] = ">>" + marked[e.Index] + "<<"
	return fmt.Sprintf("token %d: %s", e.Index, strings.Join(marked, " "))
}

func classifyAndHint(e *rpn.EvalError) (msg, hint string) {
	switch e.Kind {
	case rpn.StackUnderflow:
		if e.Token == "" {
			msg = "The expression produced no value."
			hint = "Provide at least one integer, e.g. \"42\" or \"3 4 +\"."
			return
		}
		msg = fmt.Sprintf("Operator %q needs two operands but fewer were on the stack.", e.Token)
		hint = "Operators follow their operands: write \"3 4 +\" rather than \"3 + 4\"."
	case rpn.InvalidToken:
		msg = fmt.Sprintf("%q is neither an operator nor an integer.", e.Token)
		hint = "Use the operators + - * / and base-10 integers separated by whitespace."
	case rpn.DivisionByZero:
		msg = "Division by zero."
		hint = "Make sure the value on top of the stack is not zero when \"/\" is applied."
	case rpn.MalformedExpression:
		msg = fmt.Sprintf("%d values remained on the stack; exactly one was expected.", e.Depth)
		hint = "Add operators to combine the extra operands, or remove them."
	case rpn.IntegerOverflow:
		msg = fmt.Sprintf("The value at %q does not fit in a 64-bit integer.", e.Token)
		hint = "Use smaller operands."
	default:
		msg = "Evaluation error."
	}
	return
}
