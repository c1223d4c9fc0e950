package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewConnectLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "keys are independent")

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "window slid past old attempts")

	now = now.Add(2 * time.Minute)
	rl.Prune()
	assert.Empty(t, rl.history)
}

func TestConnectLimiter_Disabled(t *testing.T) {
	rl := NewConnectLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	var nilLimiter *ConnectLimiter
	assert.True(t, nilLimiter.Allow("x"))
}
