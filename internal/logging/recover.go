package logging

import (
	"fmt"
	"runtime/debug"

	"github.com/op/go-logging"
)

// RecoverToLog runs f, logging (rather than propagating) any panic. Used
// by rpcserver around each handler invocation, so one misbehaving handler
// can't take down its connection's goroutine without at least leaving a
// trace.
func RecoverToLog(log *logging.Logger, f func()) {
	defer func() {
		if x := recover(); x != nil {
			if log != nil {
				log.Error(fmt.Sprintf("run time panic: %v", x))
				log.Error(string(debug.Stack()))
			}
		}
	}()
	f()
}
