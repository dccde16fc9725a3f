package executor

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCallerRunOnRejectExecutor(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		var count atomic.Int32

		ex := NewCallerRunOnRejectExecutor(n)
		for range 100 {
			ex.Execute(func() {
				count.Add(1)
			})
		}

		assert.NoError(t, ex.Close())
		assert.Equalf(t, int32(100), count.Load(), "n=%d: not all commands completed after Close", n)

		// closing twice is a no-op.
		assert.NoError(t, ex.Close())
	}
}
