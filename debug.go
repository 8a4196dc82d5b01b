// +build debug

package r2

import (
	"bytes"
	"fmt"
)

// lumberjack records a verbose trace of every layer transition in debug builds.
type lumberjack struct {
	*bytes.Buffer
}

func makeLumberJack() lumberjack {
	return lumberjack{Buffer: new(bytes.Buffer)}
}

func (l lumberjack) log(msg string, args ...interface{}) {
	fmt.Fprintf(l.Buffer, msg, args...)
	l.WriteByte('\n')
}

func (l lumberjack) Reset() { l.Buffer.Reset() }

func (l lumberjack) Log() string { return l.String() }
