package terminal

import (
	"context"
	"testing"

	"github.com/securevault/vault-system/internal/core/domain"
)

type stubLookup struct {
	got     domain.SearchRequest
	outcome domain.Outcome
	panics  bool
}

func (s *stubLookup) Lookup(_ context.Context, req domain.SearchRequest) domain.Outcome {
	s.got = req
	if s.panics {
		panic("transport blew up")
	}
	return s.outcome
}

func TestSession_SearchResolvesState(t *testing.T) {
	state := New()
	state.Login(admin)
	state.SetValue("ACC-1")

	lookup := &stubLookup{outcome: domain.StatusFailure(500)}
	sess := &Session{State: state, Lookup: lookup}

	out, err := sess.Search(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out.Error != "ERROR: SYSTEM_FAILURE_CODE_500" {
		t.Fatalf("unexpected error text %q", out.Error)
	}
	if lookup.got.Role != domain.RoleAdmin || lookup.got.Value != "ACC-1" {
		t.Fatalf("unexpected request %+v", lookup.got)
	}
	if state.Loading() || state.Outcome().Error != out.Error {
		t.Fatalf("state not resolved: loading=%v outcome=%+v", state.Loading(), state.Outcome())
	}
}

func TestSession_PanicStillClearsLoading(t *testing.T) {
	state := New()
	state.Login(admin)
	state.SetValue("ACC-1")
	sess := &Session{State: state, Lookup: &stubLookup{panics: true}}

	func() {
		defer func() { _ = recover() }()
		_, _ = sess.Search(context.Background())
	}()

	if state.Loading() {
		t.Fatalf("loading should be cleared after a panic")
	}
	if state.Outcome().Error != domain.ConnectionFailedMessage {
		t.Fatalf("expected connection failure, got %+v", state.Outcome())
	}
}
