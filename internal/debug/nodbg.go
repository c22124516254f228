//go:build !debug

package debug

import "fmt"

const Enabled = false

func Log([]any, string, string, ...any) {}
func Assert(bool, string, ...any)       {}

// Fatal panics unconditionally, even in a release build: it is for
// conditions the caller cannot recover from, not an invariant check.
func Fatal(format string, args ...any) {
	panic(fmt.Errorf("hattrie: fatal: "+format, args...))
}

type Value[T any] struct {
	_ struct{}
}

func (v *Value[T]) Get() *T {
	panic("called Value.Get() when not in debug mode")
}
