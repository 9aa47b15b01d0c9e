package utils

import "fmt"

func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}

// Assertf is Assert with a formatted message.
func Assertf(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}

// NoError panics with err itself so callers recovering the panic can match
// it with errors.Is.
func NoError(err error) {
	if err != nil {
		panic(err)
	}
}
