package rpn_test

import (
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/itchyny/go-yaml"

	"github.com/speakeasy-api/rpn"
)

type testCase struct {
	Name  string `yaml:"name"`
	Expr  string `yaml:"expr"`
	Want  *int64 `yaml:"want"`
	Error string `yaml:"error"`
}

func TestEvaluate(t *testing.T) {
	f, err := os.ReadFile("testdata/eval.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var tcs []testCase
	if err := yaml.Unmarshal(f, &tcs); err != nil {
		t.Fatal(err)
	}
	if len(tcs) == 0 {
		t.Fatal("no test cases")
	}
	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := rpn.Evaluate(tc.Expr)
			if tc.Error != "" {
				kind, ok := rpn.ParseErrorKind(tc.Error)
				if !ok {
					t.Fatalf("unknown error kind %q", tc.Error)
				}
				var e *rpn.EvalError
				if !errors.As(err, &e) {
					t.Fatalf("Evaluate(%q) = %d, %v; want %s", tc.Expr, got, err, tc.Error)
				}
				if diff := cmp.Diff(kind, e.Kind); diff != "" {
					t.Errorf("Evaluate(%q) error kind mismatch (-want +got):\n%s", tc.Expr, diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", tc.Expr, err)
			}
			if tc.Want == nil {
				t.Fatal("test case has neither want nor error")
			}
			if diff := cmp.Diff(*tc.Want, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tc.Expr, diff)
			}
		})
	}
}

func TestEvaluateErrorDetails(t *testing.T) {
	tests := []struct {
		expr string
		want *rpn.EvalError
	}{
		{"abc", &rpn.EvalError{Kind: rpn.InvalidToken, Token: "abc", Index: 0}},
		{"1 2 x +", &rpn.EvalError{Kind: rpn.InvalidToken, Token: "x", Index: 2}},
		{"+", &rpn.EvalError{Kind: rpn.StackUnderflow, Token: "+", Index: 0}},
		{"", &rpn.EvalError{Kind: rpn.StackUnderflow, Index: -1}},
		{"7 0 /", &rpn.EvalError{Kind: rpn.DivisionByZero, Token: "/", Index: 2}},
		{"1 2 3", &rpn.EvalError{Kind: rpn.MalformedExpression, Index: -1, Depth: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := rpn.Evaluate(tt.expr)
			var got *rpn.EvalError
			if !errors.As(err, &got) {
				t.Fatalf("expected *EvalError, got %#v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluateAbortsOnFirstError(t *testing.T) {
	// The division by zero comes before the invalid token.
	_, err := rpn.Evaluate("1 0 / abc")
	if !errors.Is(err, rpn.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	_, err = rpn.Evaluate("abc 1 0 /")
	if !errors.Is(err, rpn.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestEvaluateSingleLiteral(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 123456789, -987654321, 9223372036854775807, -9223372036854775808} {
		got, err := rpn.Evaluate(" " + strconv.FormatInt(v, 10) + " ")
		if err != nil {
			t.Fatalf("Evaluate(%d) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("Evaluate(%d) = %d", v, got)
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	for _, expr := range []string{"3 4 +", "10 4 -", "7 0 /", "abc", "1 2"} {
		v1, err1 := rpn.Evaluate(expr)
		v2, err2 := rpn.Evaluate(expr)
		if v1 != v2 {
			t.Errorf("%q: %d != %d", expr, v1, v2)
		}
		if (err1 == nil) != (err2 == nil) || (err1 != nil && err1.Error() != err2.Error()) {
			t.Errorf("%q: %v != %v", expr, err1, err2)
		}
	}
}

func TestEvaluateOrderSensitive(t *testing.T) {
	a, err := rpn.Evaluate("10 4 -")
	if err != nil {
		t.Fatal(err)
	}
	b, err := rpn.Evaluate("4 10 -")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected different results, both were %d", a)
	}
	if a != 6 || b != -6 {
		t.Errorf("got %d and %d, want 6 and -6", a, b)
	}
}

func TestEvaluateAllowLeftover(t *testing.T) {
	opts := rpn.DefaultOptions()
	opts.AllowLeftover = true
	got, err := rpn.EvaluateWithOptions("1 2 3 +", opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, err := rpn.Evaluate("5 1 2 + 4 * + 3 -")
				if err != nil || v != 14 {
					t.Errorf("got %d, %v", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEvaluateDebugTrace(t *testing.T) {
	var buf bytes.Buffer
	opts := rpn.DefaultOptions()
	opts.Logger = rpn.NewLoggerWithOptions(rpn.LevelDebug, &buf, rpn.LoggerOptions{})

	if _, err := rpn.EvaluateWithOptions("3 4 +", opts); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"[DEBUG] Token applied depth=1 index=0 op=push token=3",
		"[DEBUG] Token applied depth=2 index=1 op=push token=4",
		"[DEBUG] Token applied depth=1 index=2 op=add token=+",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}
