package rpn

// operandStack holds intermediate values for a single evaluation.
type operandStack struct {
	data []int64
}

// newOperandStack creates a new operand stack.
func newOperandStack() *operandStack {
	return &operandStack{
		data: make([]int64, 0, 16),
	}
}

// push adds a value to the top of the stack.
func (s *operandStack) push(v int64) {
	s.data = append(s.data, v)
}

// pop removes and returns the top value from the stack.
// It returns ErrStackUnderflow if the stack is empty.
func (s *operandStack) pop() (int64, error) {
	if len(s.data) == 0 {
		return 0, ErrStackUnderflow
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

// len returns the number of values on the stack.
func (s *operandStack) len() int {
	return len(s.data)
}
