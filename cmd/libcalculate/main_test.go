package main

import (
	"testing"

	rpnsolve "github.com/speakeasy-api/rpn/pkg/solve"
)

func TestSolveExport(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		status rpnsolve.Status
		want   int32
	}{
		{"addition", "3 4 +", rpnsolve.StatusOK, 7},
		{"subtraction", "10 4 -", rpnsolve.StatusOK, 6},
		{"division by zero", "7 0 /", rpnsolve.StatusDivisionByZero, 99},
		{"invalid token", "abc", rpnsolve.StatusInvalidToken, 99},
		{"empty", "", rpnsolve.StatusStackUnderflow, 99},
		{"invalid utf-8", "1 \xff +", rpnsolve.StatusDecodeError, 99},
		{"out of int range", "2147483647 1 +", rpnsolve.StatusOverflow, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := cString(tt.line)
			defer freeCString(line)
			out := cInt(99)

			if got := rpnsolve.Status(solve(line, out)); got != tt.status {
				t.Fatalf("solve(%q) = %s, want %s", tt.line, got, tt.status)
			}
			if got := goInt(out); got != tt.want {
				t.Errorf("solution = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSolveExportNullPointers(t *testing.T) {
	out := cInt(99)
	if got := rpnsolve.Status(solve(nil, out)); got != rpnsolve.StatusNullPointer {
		t.Errorf("solve(NULL, out) = %s, want %s", got, rpnsolve.StatusNullPointer)
	}
	if got := goInt(out); got != 99 {
		t.Errorf("solution = %d, want it untouched", got)
	}

	line := cString("3 4 +")
	defer freeCString(line)
	if got := rpnsolve.Status(solve(line, nil)); got != rpnsolve.StatusNullPointer {
		t.Errorf("solve(line, NULL) = %s, want %s", got, rpnsolve.StatusNullPointer)
	}
}
