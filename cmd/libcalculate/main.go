// Command libcalculate builds the C shared library exposing solve.
//
//	go build -buildmode=c-shared -o libcalculate.so ./cmd/libcalculate
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	rpnsolve "github.com/speakeasy-api/rpn/pkg/solve"
)

// solve evaluates the NUL-terminated RPN expression in line and writes the
// result to *solution. It returns 0 on success and a non-zero status
// otherwise, leaving *solution untouched.
//
//export solve
func solve(line *C.char, solution *C.int) C.int {
	if line == nil || solution == nil {
		return C.int(rpnsolve.StatusNullPointer)
	}
	// GoString copies the borrowed buffer up to its NUL terminator.
	buf := []byte(C.GoString(line))
	var out int32
	status := rpnsolve.Solve(buf, &out)
	if status == rpnsolve.StatusOK {
		*solution = C.int(out)
	}
	return C.int(status)
}

// cString allocates a C copy of s; release it with freeCString.
func cString(s string) *C.char {
	return C.CString(s)
}

func freeCString(p *C.char) {
	C.free(unsafe.Pointer(p))
}

// cInt returns a C int slot holding v.
func cInt(v int32) *C.int {
	p := new(C.int)
	*p = C.int(v)
	return p
}

func goInt(p *C.int) int32 {
	return int32(*p)
}

func main() {}
