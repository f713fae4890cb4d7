//go:build js && wasm

package main

import (
	"fmt"
	"strconv"
	"syscall/js"

	"github.com/speakeasy-api/rpn"
	"github.com/speakeasy-api/rpn/pkg/batch"
	"github.com/speakeasy-api/rpn/pkg/rpnfmt"
)

// EvaluateRPN evaluates an expression and returns the result as a decimal
// string, since JavaScript numbers cannot hold every 64-bit integer.
func EvaluateRPN(expr string) (string, error) {
	v, err := rpn.Evaluate(expr)
	if err != nil {
		return "", fmt.Errorf("%s", batch.FormatEvalError(expr, err))
	}
	return strconv.FormatInt(v, 10), nil
}

// FormatRPN formats an expression with a line break after every operator.
func FormatRPN(expr string) (string, error) {
	cfg := rpnfmt.Cfg{
		Ops:   []string{"add", "sub", "mul", "div"},
		Check: true,
	}

	formatted, err := rpnfmt.Format(expr, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to format expression: %w", err)
	}

	return formatted, nil
}

// promisify wraps a Go function to return a JavaScript Promise
func promisify(fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		// Handler for the Promise
		handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) any {
			resolve := promiseArgs[0]
			reject := promiseArgs[1]

			go func() {
				result, err := fn(args)
				if err != nil {
					errorConstructor := js.Global().Get("Error")
					errorObject := errorConstructor.New(err.Error())
					reject.Invoke(errorObject)
					return
				}

				resolve.Invoke(result)
			}()

			// The handler of a Promise doesn't return any value
			return nil
		})

		promiseConstructor := js.Global().Get("Promise")
		return promiseConstructor.New(handler)
	})
}

func main() {
	js.Global().Set("EvaluateRPN", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("EvaluateRPN: expected 1 arg (expression), got %v", len(args))
		}

		return EvaluateRPN(args[0].String())
	}))

	js.Global().Set("FormatRPN", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("FormatRPN: expected 1 arg (expression), got %v", len(args))
		}

		return FormatRPN(args[0].String())
	}))

	// Keep the program running
	<-make(chan bool)
}
