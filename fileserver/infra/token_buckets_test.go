package infra

import (
	"testing"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

func TestTokenBuckets_SameKeyReusesLimiter(t *testing.T) {
	s := NewTokenBuckets(10, time.Second)

	l1 := s.limiter(domain.ClientKey("k"), t0)
	l2 := s.limiter(domain.ClientKey("k"), t0)
	if l1 != l2 {
		t.Fatalf("expected same limiter pointer for same key")
	}
}

func TestTokenBuckets_BurstThenReject(t *testing.T) {
	s := NewTokenBuckets(2, time.Second)

	if !s.Admit("k", t0) || !s.Admit("k", t0) {
		t.Fatalf("expected the first two admissions (burst=2) to pass")
	}
	if s.Admit("k", t0) {
		t.Fatalf("expected third immediate admission to be rejected")
	}
	// 2 tokens/s: meio segundo repõe um token
	if !s.Admit("k", t0.Add(500*time.Millisecond)) {
		t.Fatalf("expected admission after refill")
	}
}

func TestTokenBuckets_ZeroLimitAlwaysAdmits(t *testing.T) {
	s := NewTokenBuckets(0, time.Second)
	for i := 0; i < 50; i++ {
		if !s.Admit("k", t0) {
			t.Fatalf("expected admission with limit disabled")
		}
	}
}

func TestTokenBuckets_CleanupRemovesIdleEntries(t *testing.T) {
	s := NewTokenBuckets(10, time.Second, WithIdleTTL(time.Minute), WithCleanupEvery(0))

	before := s.limiter("k", t0)
	s.Cleanup(t0.Add(2 * time.Minute))

	after := s.limiter("k", t0.Add(2*time.Minute))
	if before == after {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}
