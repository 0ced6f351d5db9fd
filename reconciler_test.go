package main

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeResponseStore struct {
	updateErr error
	deleteErr error
	updates   []Response
	deletes   []string
}

func (f *fakeResponseStore) UpdateResponse(_ context.Context, r Response) error {
	f.updates = append(f.updates, r)
	return f.updateErr
}

func (f *fakeResponseStore) DeleteResponse(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func seedCache(store ResponseStore, notify NotifyFunc) *GuestCache {
	cache := NewGuestCache(store, notify)
	cache.Replace([]Response{
		{ID: "r1", Name: "Ana", Email: "ana@example.com", AttendanceStatus: "attending", PartySize: 2},
		{ID: "r2", Name: "Luis", Email: "luis@example.com", AttendanceStatus: "not attending", PartySize: 1},
		{ID: "r3", Name: "Sofia", Email: "sofia@example.com", PartySize: 1},
	})
	return cache
}

func TestGuestCacheEditSuccess(t *testing.T) {
	store := &fakeResponseStore{}
	cache := seedCache(store, nil)

	updated := Response{ID: "r2", Name: "Luis M", Email: "luis@example.com", AttendanceStatus: "attending", PartySize: 3}
	if err := cache.Edit(context.Background(), updated); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	got, ok := cache.Get("r2")
	if !ok {
		t.Fatal("r2 missing after edit")
	}
	if got != updated {
		t.Errorf("cached row = %+v, want %+v", got, updated)
	}
	if len(store.updates) != 1 || store.updates[0].ID != "r2" {
		t.Errorf("store updates = %+v, want one update for r2", store.updates)
	}
}

func TestGuestCacheEditFailureRollsBack(t *testing.T) {
	store := &fakeResponseStore{updateErr: errors.New("db down")}
	var notifications []string
	cache := seedCache(store, func(msg string) {
		notifications = append(notifications, msg)
	})
	before := cache.Responses()

	err := cache.Edit(context.Background(), Response{ID: "r1", Name: "Changed", Email: "ana@example.com"})
	if err == nil {
		t.Fatal("Edit() expected error")
	}

	after := cache.Responses()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("cache after failed edit = %+v, want pre-edit list %+v", after, before)
	}
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want exactly 1", len(notifications))
	}
	if notifications[0] != "Failed to update RSVP response. Please try again." {
		t.Errorf("notification = %q", notifications[0])
	}
}

func TestGuestCacheEditUnknownID(t *testing.T) {
	store := &fakeResponseStore{}
	var notified bool
	cache := seedCache(store, func(string) { notified = true })

	err := cache.Edit(context.Background(), Response{ID: "missing"})
	if err == nil {
		t.Fatal("Edit() expected error for unknown id")
	}
	if len(store.updates) != 0 {
		t.Errorf("store received %d updates, want 0", len(store.updates))
	}
	if notified {
		t.Error("notification fired for local-only failure")
	}
}

func TestGuestCacheDeleteSuccess(t *testing.T) {
	store := &fakeResponseStore{}
	var notified bool
	cache := seedCache(store, func(string) { notified = true })

	if err := cache.Delete(context.Background(), "r2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, ok := cache.Get("r2"); ok {
		t.Error("r2 still present after delete")
	}
	if got := len(cache.Responses()); got != 2 {
		t.Errorf("cache size = %d, want 2", got)
	}
	if !reflect.DeepEqual(store.deletes, []string{"r2"}) {
		t.Errorf("store deletes = %v, want [r2]", store.deletes)
	}
	if notified {
		t.Error("notification fired on successful delete")
	}
}

func TestGuestCacheDeleteFailureRollsBack(t *testing.T) {
	store := &fakeResponseStore{deleteErr: errors.New("db down")}
	var notifications []string
	cache := seedCache(store, func(msg string) {
		notifications = append(notifications, msg)
	})
	before := cache.Responses()

	if err := cache.Delete(context.Background(), "r1"); err == nil {
		t.Fatal("Delete() expected error")
	}

	after := cache.Responses()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("cache after failed delete = %+v, want pre-delete list %+v", after, before)
	}
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want exactly 1", len(notifications))
	}
	if notifications[0] != "Failed to delete RSVP response. Please try again." {
		t.Errorf("notification = %q", notifications[0])
	}
}

func TestGuestCacheDeleteUnknownID(t *testing.T) {
	store := &fakeResponseStore{}
	cache := seedCache(store, nil)

	if err := cache.Delete(context.Background(), "missing"); err == nil {
		t.Fatal("Delete() expected error for unknown id")
	}
	if len(store.deletes) != 0 {
		t.Errorf("store received %d deletes, want 0", len(store.deletes))
	}
	if got := len(cache.Responses()); got != 3 {
		t.Errorf("cache size = %d, want 3", got)
	}
}

func TestGuestCacheReplaceCopies(t *testing.T) {
	cache := NewGuestCache(&fakeResponseStore{}, nil)
	src := []Response{{ID: "r1", Name: "Ana"}}
	cache.Replace(src)

	src[0].Name = "mutated"
	got, _ := cache.Get("r1")
	if got.Name != "Ana" {
		t.Errorf("cache shares backing array with caller: name = %q", got.Name)
	}
}
