package exception

import (
	"runtime/debug"

	"github.com/reflectoken/rtk/logx"
)

// SafeGo runs fn on a new goroutine and turns panics into error logs instead
// of crashing the process.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logx.Error("Panic in: ", name, r, string(debug.Stack()))
			}
		}()
		fn()
	}()
}
