package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

func TestRedisSequencerIncrementsPerDay(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	seq := shared.NewRedisSequencer(client)
	ctx := context.Background()

	day := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	for want := int64(1); want <= 3; want++ {
		got, err := seq.Next(ctx, "so", day)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	// A different day restarts the sequence.
	got, err := seq.Next(ctx, "so", day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("next day: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected fresh sequence, got %d", got)
	}

	// Different document families do not share counters.
	got, err = seq.Next(ctx, "inv", day)
	if err != nil {
		t.Fatalf("inv next: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected independent counter, got %d", got)
	}
}

func TestFormatDocNumber(t *testing.T) {
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := shared.FormatDocNumber("SO", day, 7); got != "SO250901-007" {
		t.Fatalf("unexpected doc number %q", got)
	}
	if got := shared.FormatDocNumber("INV", day, 123); got != "INV250901-123" {
		t.Fatalf("unexpected doc number %q", got)
	}
}

func TestSessionRoundTripAndDestroy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := shared.NewSessionManager(client, "bakehouse_session", time.Hour, false)
	ctx := context.Background()

	sess := newLoadedSession(t, ctx, sm)
	sess.SetUser("42")
	sess.Set("role", "owner")

	rec := newRecorder()
	if err := sm.Commit(ctx, rec, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	reloaded := reloadSession(t, ctx, sm, sess.ID)
	if reloaded.User() != "42" {
		t.Fatalf("expected user 42, got %q", reloaded.User())
	}
	if reloaded.Get("role") != "owner" {
		t.Fatalf("expected role value to persist")
	}

	sm.Destroy(reloaded)
	if err := sm.Commit(ctx, newRecorder(), reloaded); err != nil {
		t.Fatalf("destroy commit: %v", err)
	}
	gone := reloadSession(t, ctx, sm, sess.ID)
	if gone.User() != "" {
		t.Fatalf("expected destroyed session to be empty")
	}
}

func newLoadedSession(t *testing.T, ctx context.Context, sm *shared.SessionManager) *shared.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return sess
}

func reloadSession(t *testing.T, ctx context.Context, sm *shared.SessionManager, id string) *shared.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: id})
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	return sess
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
