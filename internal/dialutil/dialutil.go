// Package dialutil provides the small "wait for a just-launched server to
// start accepting connections" helper the example cmd/ binaries share.
package dialutil

import (
	"fmt"
	"time"

	"github.com/erer1243/rpcquickly/rpcclient"
)

// ConnectWithRetry retries rpcclient.Connect against addr until it
// succeeds or timeout elapses. The example binaries spawn their server and
// client in the same process, so the client has to tolerate the listener
// not being up yet.
func ConnectWithRetry(addr string, timeout time.Duration) (*rpcclient.Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := rpcclient.Connect(addr)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(5 * time.Millisecond)
	}
	return nil, fmt.Errorf("dialutil: %s never became reachable: %w", addr, lastErr)
}
