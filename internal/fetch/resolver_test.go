package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_FirstCallDoesNotBlock(t *testing.T) {
	g := NewGate(5*time.Second, 10*time.Second)
	slept := time.Duration(0)
	g.sleep = func(d time.Duration) { slept += d }

	g.Wait()
	assert.Zero(t, slept)
}

func TestGate_EnforcesMinimumInterval(t *testing.T) {
	g := NewGate(5*time.Second, 10*time.Second)

	current := time.Unix(1000, 0)
	g.now = func() time.Time { return current }

	var slept time.Duration
	g.sleep = func(d time.Duration) { slept = d }

	g.Wait()

	// Second fetch one second later must wait out the rest of the interval.
	current = current.Add(time.Second)
	g.Wait()

	assert.GreaterOrEqual(t, slept, 4*time.Second)
	assert.LessOrEqual(t, slept, 9*time.Second)
}

func TestGate_NoSleepAfterLongPause(t *testing.T) {
	g := NewGate(5*time.Second, 10*time.Second)

	current := time.Unix(1000, 0)
	g.now = func() time.Time { return current }

	slept := time.Duration(0)
	g.sleep = func(d time.Duration) { slept += d }

	g.Wait()
	current = current.Add(time.Minute)
	g.Wait()

	assert.Zero(t, slept)
}

func TestNewGate_SwappedBounds(t *testing.T) {
	g := NewGate(10*time.Second, 5*time.Second)
	assert.Equal(t, g.min, g.max)
}
