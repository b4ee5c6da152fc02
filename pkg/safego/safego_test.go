package safego

import (
	"context"
	"testing"
	"time"
)

func TestGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	Go(context.Background(), func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
}

func TestRecoveryWithNilContext(t *testing.T) {
	func() {
		defer Recovery(nil) //nolint:staticcheck
		panic("nil ctx")
	}()
}
