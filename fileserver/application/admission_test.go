package application

import (
	"testing"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

type fakeAdmitter struct {
	allow bool
	seen  []time.Time
}

func (f *fakeAdmitter) Admit(_ domain.ClientKey, now time.Time) bool {
	f.seen = append(f.seen, now)
	return f.allow
}

func TestAdmissionService_AllowsWhenNoAdmitter(t *testing.T) {
	svc := AdmissionService{}
	dec := svc.Decide("10.0.0.1")
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if dec.RetryAfter != 0 {
		t.Fatalf("expected RetryAfter=0 when allowed, got %s", dec.RetryAfter)
	}
}

func TestAdmissionService_PassesClockToAdmitter(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	adm := &fakeAdmitter{allow: true}
	svc := AdmissionService{Admitter: adm, Now: func() time.Time { return at }}

	if dec := svc.Decide("k"); !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if len(adm.seen) != 1 || !adm.seen[0].Equal(at) {
		t.Fatalf("expected admitter to see the injected clock, got %v", adm.seen)
	}
}

func TestAdmissionService_BlocksWithRetryAfterDefault(t *testing.T) {
	svc := AdmissionService{Admitter: &fakeAdmitter{allow: false}}
	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 1*time.Second {
		t.Fatalf("expected default RetryAfter=1s, got %s", dec.RetryAfter)
	}
}

func TestAdmissionService_BlocksWithConfiguredRetryAfter(t *testing.T) {
	svc := AdmissionService{Admitter: &fakeAdmitter{allow: false}, RetryAfter: 2500 * time.Millisecond}
	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 2500*time.Millisecond {
		t.Fatalf("expected RetryAfter=2.5s, got %s", dec.RetryAfter)
	}
}
