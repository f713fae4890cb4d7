// Command rpn evaluates Reverse Polish Notation integer expressions.
//
//	rpn '3 4 +' '10 4 -'
//	echo '6 7 *' | rpn
//	rpn --batch cases.yaml
package main

import (
	"os"
)

func main() {
	os.Exit((&runner{
		inStream:  os.Stdin,
		outStream: os.Stdout,
		errStream: os.Stderr,
		isTTY:     isTerminal(os.Stderr),
	}).run(os.Args[1:]))
}
