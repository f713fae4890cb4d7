package rpnfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/speakeasy-api/rpn"
)

type Cfg struct {
	// Ops lists the operators followed by a line break.
	Ops []string
	// Check also evaluates the expression so that stack errors are reported.
	Check bool
}

var validOps = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
}

func ValidateConfig(cfg Cfg) (Cfg, error) {
	names := []string{"add", "sub", "mul", "div"}

	ops := make([]string, len(cfg.Ops))
	for o, op := range cfg.Ops {
		vop := strings.ToLower(op)
		if _, ok := validOps[vop]; !ok {
			return cfg, fmt.Errorf("invalid operator \"%s\"; valid operators: %s", op, strings.Join(names, ", "))
		}
		ops[o] = vop
	}
	cfg.Ops = ops

	return cfg, nil
}

// Format prints expr in canonical form: one space between tokens and
// integer literals without sign or leading zero noise.
func Format(expr string, cfg Cfg) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	breakAfter := map[string]bool{}
	for _, op := range cfg.Ops {
		breakAfter[validOps[op]] = true
	}

	toks := strings.Fields(expr)
	var b strings.Builder
	for i, tok := range toks {
		out, err := canonical(tok)
		if err != nil {
			var kind rpn.ErrorKind = rpn.InvalidToken
			if errors.Is(err, strconv.ErrRange) {
				kind = rpn.IntegerOverflow
			}
			return "", &rpn.EvalError{Kind: kind, Token: tok, Index: i}
		}
		b.WriteString(out)
		if i == len(toks)-1 {
			break
		}
		if breakAfter[out] {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}

	if cfg.Check {
		if _, err := rpn.Evaluate(expr); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func canonical(tok string) (string, error) {
	switch tok {
	case "+", "-", "*", "/":
		return tok, nil
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}
