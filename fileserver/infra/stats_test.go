package infra

import (
	"context"
	"errors"
	"testing"

	"concurrent-fileserver/fileserver/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStats_CountsAdmissionsAndHits(t *testing.T) {
	s := NewMemoryStats(WithTrackClients(true))
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Client: "a", Allowed: true}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Client: "a", Allowed: false}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Client: "b", Allowed: true}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventHit, Resource: "/"}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventHit, Resource: "/"}))

	assert.Equal(t, Counters{Allowed: 2, Denied: 1}, s.Total())
	assert.Equal(t, Counters{Allowed: 1, Denied: 1}, s.ByClient()["a"])
	assert.Equal(t, int64(2), s.Hits()["/"])
}

func TestMemoryStats_ClientsNotTrackedByDefault(t *testing.T) {
	s := NewMemoryStats()
	_ = s.Record(context.Background(), domain.StatsEvent{Kind: domain.EventAdmission, Client: "a", Allowed: true})
	assert.Empty(t, s.ByClient())
}

func TestPrometheusStats_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPrometheusStats(reg)
	require.NoError(t, err)

	ctx := context.Background()
	_ = s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Allowed: true})
	_ = s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Allowed: false})
	_ = s.Record(ctx, domain.StatsEvent{Kind: domain.EventAdmission, Allowed: false})
	_ = s.Record(ctx, domain.StatsEvent{Kind: domain.EventHit, Resource: "/docs/"})

	assert.Equal(t, 1.0, testutil.ToFloat64(s.admissions.WithLabelValues("allowed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.admissions.WithLabelValues("denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.hits.WithLabelValues("/docs/")))

	_, err = NewPrometheusStats(reg)
	assert.Error(t, err, "registering twice on the same registry must fail")
}

type failingStats struct{ err error }

func (f failingStats) Record(context.Context, domain.StatsEvent) error { return f.err }

func TestMultiStats_FansOutAndJoinsErrors(t *testing.T) {
	mem := NewMemoryStats()
	boom := errors.New("boom")
	m := MultiStats{mem, nil, failingStats{err: boom}}

	err := m.Record(context.Background(), domain.StatsEvent{Kind: domain.EventHit, Resource: "/x.html"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), mem.Hits()["/x.html"])
}

func TestRedisStats_NilIsNoop(t *testing.T) {
	var s *RedisStats
	assert.NoError(t, s.Record(context.Background(), domain.StatsEvent{}))
}
