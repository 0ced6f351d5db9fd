package main

import (
	"context"
	"errors"
	"testing"
)

type fakeFAQStore struct {
	failID string
	calls  []struct {
		ID        string
		SortOrder int
	}
}

func (f *fakeFAQStore) UpdateFAQPosition(_ context.Context, id string, sortOrder int) error {
	f.calls = append(f.calls, struct {
		ID        string
		SortOrder int
	}{id, sortOrder})
	if id == f.failID {
		return errors.New("write failed")
	}
	return nil
}

func TestAssignPositions(t *testing.T) {
	// Original order A(0), B(1), C(2); the admin moves C to the front.
	reordered := []FAQ{
		{ID: "c", Question: "C", SortOrder: 2},
		{ID: "a", Question: "A", SortOrder: 0},
		{ID: "b", Question: "B", SortOrder: 1},
	}

	got := assignPositions(reordered)

	wantOrders := map[string]int{"c": 0, "a": 1, "b": 2}
	for _, f := range got {
		if f.SortOrder != wantOrders[f.ID] {
			t.Errorf("%s sort_order = %d, want %d", f.ID, f.SortOrder, wantOrders[f.ID])
		}
	}

	// Input slice must be left untouched.
	if reordered[0].SortOrder != 2 {
		t.Errorf("input mutated: %+v", reordered[0])
	}
}

func TestAssignPositionsEmpty(t *testing.T) {
	got := assignPositions(nil)
	if len(got) != 0 {
		t.Errorf("assignPositions(nil) = %v, want empty", got)
	}
}

func TestPersistOrderWritesEveryItem(t *testing.T) {
	store := &fakeFAQStore{}
	faqs := assignPositions([]FAQ{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	if err := persistOrder(context.Background(), store, faqs); err != nil {
		t.Fatalf("persistOrder() error = %v", err)
	}

	if len(store.calls) != 3 {
		t.Fatalf("store calls = %d, want 3", len(store.calls))
	}
	for i, call := range store.calls {
		if call.SortOrder != i {
			t.Errorf("call %d wrote sort_order %d, want %d", i, call.SortOrder, i)
		}
	}
}

func TestPersistOrderAttemptsAllDespiteFailure(t *testing.T) {
	store := &fakeFAQStore{failID: "a"}
	faqs := assignPositions([]FAQ{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	err := persistOrder(context.Background(), store, faqs)
	if err == nil {
		t.Fatal("persistOrder() expected error")
	}

	// The failing middle item must not stop the remaining writes.
	if len(store.calls) != 3 {
		t.Errorf("store calls = %d, want 3", len(store.calls))
	}
}

func TestPersistOrderReturnsFirstError(t *testing.T) {
	store := &fakeFAQStore{failID: "c"}
	faqs := assignPositions([]FAQ{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	err := persistOrder(context.Background(), store, faqs)
	if err == nil || err.Error() != "write failed" {
		t.Errorf("persistOrder() error = %v, want first write failure", err)
	}
}
