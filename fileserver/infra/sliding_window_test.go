package infra

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"concurrent-fileserver/fileserver/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSlidingWindow_ZeroLimitAlwaysAdmits(t *testing.T) {
	for _, limit := range []int{0, -3} {
		s := NewSlidingWindow(limit, time.Second)
		for i := 0; i < 100; i++ {
			require.True(t, s.Admit("10.0.0.1", t0))
		}
		// o bucket nem é consultado
		assert.Equal(t, 0, s.Clients())
	}
}

func TestSlidingWindow_UnseenClientAdmitted(t *testing.T) {
	s := NewSlidingWindow(1, time.Second)
	require.True(t, s.Admit("a", t0))
	require.False(t, s.Admit("a", t0))
	assert.True(t, s.Admit("b", t0), "another client has its own bucket")
}

func TestSlidingWindow_DeniesAtLimitThenRecovers(t *testing.T) {
	s := NewSlidingWindow(3, time.Second)

	for i := 0; i < 3; i++ {
		require.True(t, s.Admit("k", t0.Add(time.Duration(i)*100*time.Millisecond)))
	}
	assert.False(t, s.Admit("k", t0.Add(500*time.Millisecond)))
	assert.False(t, s.Admit("k", t0.Add(999*time.Millisecond)))

	// t0 sai da janela em t0+1s; os outros dois continuam
	assert.True(t, s.Admit("k", t0.Add(1000*time.Millisecond)))
	assert.False(t, s.Admit("k", t0.Add(1050*time.Millisecond)))
	assert.Equal(t, 3, s.Len("k"))
}

func TestSlidingWindow_TimestampExactlyAtBoundaryIsEvicted(t *testing.T) {
	s := NewSlidingWindow(1, time.Second)
	require.True(t, s.Admit("k", t0))

	// now-window == t0: o registro em t0 não conta mais
	assert.True(t, s.Admit("k", t0.Add(time.Second)))

	// um nanossegundo antes da borda ainda conta
	s2 := NewSlidingWindow(1, time.Second)
	require.True(t, s2.Admit("k", t0))
	assert.False(t, s2.Admit("k", t0.Add(time.Second-time.Nanosecond)))
}

func TestSlidingWindow_DeniedRequestsDoNotConsume(t *testing.T) {
	s := NewSlidingWindow(2, time.Second)
	require.True(t, s.Admit("k", t0))
	require.True(t, s.Admit("k", t0.Add(10*time.Millisecond)))
	for i := 0; i < 50; i++ {
		require.False(t, s.Admit("k", t0.Add(500*time.Millisecond)))
	}
	assert.Equal(t, 2, s.Len("k"))
	assert.True(t, s.Admit("k", t0.Add(time.Second)))
}

// Em qualquer intervalo de duração W, no máximo N admissões.
func TestSlidingWindow_TrailingWindowNeverExceedsLimit(t *testing.T) {
	const (
		limit  = 5
		window = time.Second
	)
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		s := NewSlidingWindow(limit, window)
		now := t0
		var admitted []time.Time
		for i := 0; i < 500; i++ {
			now = now.Add(time.Duration(rng.Intn(300)) * time.Millisecond)
			if s.Admit("k", now) {
				admitted = append(admitted, now)
			}
		}

		for i, start := range admitted {
			n := 0
			for _, at := range admitted[i:] {
				if at.Sub(start) < window {
					n++
				}
			}
			require.LessOrEqualf(t, n, limit, "run %d: %d admissions within %s of %s", run, n, window, start)
		}
		require.LessOrEqual(t, s.Len("k"), limit)
	}
}

func TestSlidingWindow_ConcurrentAdmitsRespectLimit(t *testing.T) {
	const limit = 10
	s := NewSlidingWindow(limit, time.Hour)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if s.Admit("10.0.0.1", time.Now()) {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(limit), admitted.Load())
	assert.Equal(t, limit, s.Len("10.0.0.1"))
}

func TestSlidingWindow_CleanupDropsIdleClients(t *testing.T) {
	s := NewSlidingWindow(2, time.Second, WithWindowCleanupEvery(0))
	s.Admit("old", t0)
	s.Admit("fresh", t0.Add(900*time.Millisecond))

	s.Cleanup(t0.Add(1500 * time.Millisecond))

	assert.Equal(t, 1, s.Clients())
	assert.Equal(t, 0, s.Len("old"))
	assert.Equal(t, 1, s.Len("fresh"))
}

func TestSlidingWindow_ImplementsAdmitter(t *testing.T) {
	var _ domain.Admitter = NewSlidingWindow(1, time.Second)
}
