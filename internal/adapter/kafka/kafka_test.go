package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlowDown(t *testing.T) {
	t.Run("ReturnsEarlyOnDoneContext", func(t *testing.T) {
		c := consumer{slowDownTimer: time.NewTimer(0)}
		<-c.slowDownTimer.C

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		start := time.Now()
		c.slowDown(ctx)

		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("WaitsOutBackoff", func(t *testing.T) {
		c := consumer{slowDownTimer: time.NewTimer(0)}
		<-c.slowDownTimer.C

		start := time.Now()
		c.slowDown(t.Context())

		assert.GreaterOrEqual(t, time.Since(start), 1*time.Second)
	})
}
