package fetch

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Resolver fetches the caption and thumbnail URL of a public post.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (caption, thumbnailURL string, err error)
	Close()
}

// Gate enforces a randomized minimum interval between fetches so a run does
// not hammer the host. Clock and sleep are injectable for tests.
type Gate struct {
	mu    sync.Mutex
	min   time.Duration
	max   time.Duration
	last  time.Time
	sleep func(time.Duration)
	now   func() time.Time
	rnd   *rand.Rand
}

func NewGate(min, max time.Duration) *Gate {
	if max < min {
		max = min
	}
	return &Gate{
		min:   min,
		max:   max,
		sleep: time.Sleep,
		now:   time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until the jittered interval since the previous fetch has
// passed. The first call never blocks.
func (g *Gate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		interval := g.min
		if g.max > g.min {
			interval += time.Duration(g.rnd.Int63n(int64(g.max - g.min)))
		}
		if elapsed := g.now().Sub(g.last); elapsed < interval {
			g.sleep(interval - elapsed)
		}
	}
	g.last = g.now()
}
