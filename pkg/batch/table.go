package batch

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/speakeasy-api/rpn"
)

var header = [...]string{"NAME", "EXPR", "RESULT", "STATUS"}

// RenderTable writes results as aligned columns. Column widths account for
// wide and combining characters.
func RenderTable(w io.Writer, results []Result) error {
	rows := make([][len(header)]string, 0, len(results)+1)
	rows = append(rows, header)
	for _, r := range results {
		status := "ok"
		if !r.Pass {
			status = "FAIL"
		}
		rows = append(rows, [len(header)]string{r.Case.Name, r.Case.Expr, resultText(r), status})
	}

	var widths [len(header)]int
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				if _, err := fmt.Fprintln(w, cell); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprint(w, runewidth.FillRight(cell, widths[i]), "  "); err != nil {
				return err
			}
		}
	}
	return nil
}

func resultText(r Result) string {
	if r.Err == nil {
		return strconv.FormatInt(r.Value, 10)
	}
	var e *rpn.EvalError
	if errors.As(r.Err, &e) {
		return e.Kind.String()
	}
	return r.Err.Error()
}
