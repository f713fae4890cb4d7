// Command inspect-expr prints the per-token evaluation trace of each
// expression given as an argument.
package main

import (
	"fmt"
	"os"

	"github.com/speakeasy-api/rpn"
)

func main() {
	exprs := os.Args[1:]
	if len(exprs) == 0 {
		exprs = []string{
			"3 4 +",     // Add
			"10 4 -",    // Subtract, left minus right
			"6 7 * 2 /", // Multiply then divide
			"1 +",       // Underflow
			"1 2",       // Leftover operand
		}
	}

	for _, expr := range exprs {
		fmt.Printf("\n=== %s ===\n", expr)
		opts := rpn.DefaultOptions()
		opts.Logger = rpn.NewLoggerWithOptions(rpn.LevelDebug, os.Stdout, rpn.LoggerOptions{})

		v, err := rpn.EvaluateWithOptions(expr, opts)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("result: %d\n", v)
	}
}
