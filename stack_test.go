package rpn

import (
	"errors"
	"testing"
)

func testPop(t *testing.T, s *operandStack, want int64, wantErr error) {
	t.Helper()
	v, err := s.pop()

	if v != want {
		t.Errorf("%#v != %#v", v, want)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("%#v != %#v", err, wantErr)
	}
}

func TestPopEmpty(t *testing.T) {
	s := newOperandStack()
	testPop(t, s, 0, ErrStackUnderflow)
	testPop(t, s, 0, ErrStackUnderflow)
}

func TestPushPopToError(t *testing.T) {
	s := newOperandStack()
	testPop(t, s, 0, ErrStackUnderflow)
	s.push(7)
	testPop(t, s, 7, nil)
	testPop(t, s, 0, ErrStackUnderflow)
}

func TestMultiPushPopSequence(t *testing.T) {
	s := newOperandStack()
	for round := 0; round < 3; round++ {
		s.push(1)
		s.push(-2)
		s.push(3)
		if s.len() != 3 {
			t.Fatalf("len = %d, want 3", s.len())
		}
		testPop(t, s, 3, nil)
		testPop(t, s, -2, nil)
		testPop(t, s, 1, nil)
		testPop(t, s, 0, ErrStackUnderflow)
		if s.len() != 0 {
			t.Fatalf("len = %d, want 0", s.len())
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tok     string
		op      opcode
		v       int64
		wantErr bool
	}{
		{"+", opadd, 0, false},
		{"-", opsub, 0, false},
		{"*", opmul, 0, false},
		{"/", opdiv, 0, false},
		{"12", oppush, 12, false},
		{"-12", oppush, -12, false},
		{"+12", oppush, 12, false},
		{"--", 0, 0, true},
		{"0x10", 0, 0, true},
		{"1e3", 0, 0, true},
	}
	for _, tt := range tests {
		c, err := classify(tt.tok)
		if (err != nil) != tt.wantErr {
			t.Errorf("classify(%q) error = %v", tt.tok, err)
			continue
		}
		if err == nil && (c.op != tt.op || c.v != tt.v) {
			t.Errorf("classify(%q) = %s %d, want %s %d", tt.tok, c.op, c.v, tt.op, tt.v)
		}
	}
}
