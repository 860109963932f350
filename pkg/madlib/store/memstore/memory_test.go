package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/madlib/pkg/madlib/store"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	sess := store.Session{
		ID:        "01A",
		CreatedAt: time.Now(),
		Template:  "The {} sat.",
		Blanks:    []store.Blank{{Short: "noun", Original: "cat", Answer: "dog", Accepted: true}},
	}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, found, err := s.GetSession(ctx, "01A")
	if err != nil || !found {
		t.Fatalf("GetSession = %v, %v", found, err)
	}
	if got.Template != sess.Template || len(got.Blanks) != 1 || got.Blanks[0].Answer != "dog" {
		t.Errorf("session = %+v", got)
	}

	// mutating the returned copy must not touch the stored session
	got.Blanks[0].Answer = "changed"
	again, _, _ := s.GetSession(ctx, "01A")
	if again.Blanks[0].Answer != "dog" {
		t.Error("store returned a shared slice")
	}
}

func TestGetMissing(t *testing.T) {
	_, found, err := New().GetSession(context.Background(), "nope")
	if err != nil || found {
		t.Errorf("GetSession(nope) = %v, %v", found, err)
	}
}

func TestSaveWithoutIDIgnored(t *testing.T) {
	s := New()
	if err := s.SaveSession(context.Background(), store.Session{}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	list, _ := s.ListSessions(context.Background(), 10)
	if len(list) != 0 {
		t.Errorf("expected empty store, got %d", len(list))
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := s.SaveSession(ctx, store.Session{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("SaveSession: %v", err)
		}
	}

	list, err := s.ListSessions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Errorf("list = %+v", list)
	}
}
