package batch

import (
	"errors"

	"github.com/speakeasy-api/rpn"
)

// Result is the outcome of one case.
type Result struct {
	Case  Case
	Value int64
	Err   error
	// Pass is false when the outcome contradicts Want or Error. Cases without
	// an expectation pass when they evaluate successfully.
	Pass bool
}

// Run evaluates every case independently.
func Run(b *Batch, opts rpn.Options) []Result {
	logger := opts.Logger
	if logger == nil {
		logger = rpn.NopLogger()
	}

	results := make([]Result, 0, len(b.Cases))
	for _, c := range b.Cases {
		v, err := rpn.EvaluateWithOptions(c.Expr, opts)
		r := Result{Case: c, Value: v, Err: err, Pass: check(c, v, err)}
		if !r.Pass {
			logger.With(map[string]any{
				"case": c.Name,
				"expr": c.Expr,
			}).Infof("Case failed")
		}
		results = append(results, r)
	}
	return results
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Pass {
			n++
		}
	}
	return n
}

func check(c Case, v int64, err error) bool {
	if c.Error != "" {
		kind, _ := rpn.ParseErrorKind(c.Error)
		var e *rpn.EvalError
		return errors.As(err, &e) && e.Kind == kind
	}
	if err != nil {
		return false
	}
	return c.Want == nil || *c.Want == v
}
