package main

import (
	"context"
	"log"
)

// FAQStore persists individual FAQ positions. The production
// implementation writes to the faqs collection.
type FAQStore interface {
	UpdateFAQPosition(ctx context.Context, id string, sortOrder int) error
}

// assignPositions returns a copy of the list with each element's SortOrder
// set to its index in the new desired order.
func assignPositions(faqs []FAQ) []FAQ {
	out := make([]FAQ, len(faqs))
	for i, f := range faqs {
		f.SortOrder = i
		out[i] = f
	}
	return out
}

// persistOrder writes every element's new position as an individual call.
// It attempts all writes regardless of individual failures and returns the
// first error; positions already written are not rolled back (the backing
// store offers no transaction across rows here, and partial orders are
// repaired by the next reorder).
func persistOrder(ctx context.Context, store FAQStore, faqs []FAQ) error {
	var firstErr error
	for _, f := range faqs {
		if err := store.UpdateFAQPosition(ctx, f.ID, f.SortOrder); err != nil {
			log.Printf("[FAQ] Failed to persist position %d for %s: %v", f.SortOrder, f.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
