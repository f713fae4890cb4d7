package rpn

import "strconv"

// code is a classified token. Codes live only for the loop iteration that
// produced them.
type code struct {
	v  int64
	op opcode
}

// OpString returns the string representation of the opcode.
func (c *code) OpString() string {
	return c.op.String()
}

type opcode int

const (
	oppush opcode = iota
	opadd
	opsub
	opmul
	opdiv
)

func (op opcode) String() string {
	switch op {
	case oppush:
		return "push"
	case opadd:
		return "add"
	case opsub:
		return "sub"
	case opmul:
		return "mul"
	case opdiv:
		return "div"
	default:
		panic(op)
	}
}

// classify turns a token into a code. Anything that is not an operator is
// parsed as a base-10 integer literal; the strconv error is returned as is.
func classify(tok string) (code, error) {
	switch tok {
	case "+":
		return code{op: opadd}, nil
	case "-":
		return code{op: opsub}, nil
	case "*":
		return code{op: opmul}, nil
	case "/":
		return code{op: opdiv}, nil
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return code{}, err
	}
	return code{v: v, op: oppush}, nil
}
