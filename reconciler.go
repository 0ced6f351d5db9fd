package main

import (
	"context"
	"fmt"
	"sync"
)

// ResponseStore is the remote side of the guest cache. The production
// implementation writes to the rsvp_responses collection; tests use a fake.
type ResponseStore interface {
	UpdateResponse(ctx context.Context, r Response) error
	DeleteResponse(ctx context.Context, id string) error
}

// NotifyFunc receives user-visible notifications from the guest cache.
// Exactly one notification fires per failed operation.
type NotifyFunc func(message string)

// GuestCache holds the admin dashboard's working copy of the response list
// and keeps it consistent with the remote store through optimistic
// mutation with snapshot rollback: every edit or delete captures the full
// pre-mutation list, applies the change locally, issues the remote write,
// and restores the captured snapshot wholesale if the write fails. There
// is no field-level reconciliation.
//
// Overlapping operations on different rows are independent (each holds its
// own snapshot); overlapping writes to the same row are last-write-wins.
type GuestCache struct {
	mu        sync.Mutex
	responses []Response
	store     ResponseStore
	notify    NotifyFunc
}

// NewGuestCache creates a cache backed by the given store. notify may be
// nil when no user-visible channel exists (e.g. CLI use).
func NewGuestCache(store ResponseStore, notify NotifyFunc) *GuestCache {
	if notify == nil {
		notify = func(string) {}
	}
	return &GuestCache{store: store, notify: notify}
}

// Replace swaps in a freshly fetched response list.
func (c *GuestCache) Replace(responses []Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append([]Response(nil), responses...)
}

// Responses returns a copy of the current list.
func (c *GuestCache) Responses() []Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Response(nil), c.responses...)
}

// Get returns the cached row with the given id.
func (c *GuestCache) Get(id string) (Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.responses {
		if r.ID == id {
			return r, true
		}
	}
	return Response{}, false
}

// Edit replaces the matching row with the fully-formed replacement,
// optimistically first, then remotely. On remote failure the pre-edit
// list is restored exactly and a recoverable error is returned.
func (c *GuestCache) Edit(ctx context.Context, updated Response) error {
	c.mu.Lock()
	snapshot := append([]Response(nil), c.responses...)

	found := false
	for i, r := range c.responses {
		if r.ID == updated.ID {
			c.responses[i] = updated
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return fmt.Errorf("response %s not found", updated.ID)
	}
	c.mu.Unlock()

	if err := c.store.UpdateResponse(ctx, updated); err != nil {
		c.restore(snapshot)
		c.notify("Failed to update RSVP response. Please try again.")
		return fmt.Errorf("update response %s: %w", updated.ID, err)
	}
	return nil
}

// Delete removes the row locally, then remotely. On remote failure the
// full pre-delete list is restored.
func (c *GuestCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	snapshot := append([]Response(nil), c.responses...)

	found := false
	kept := c.responses[:0]
	for _, r := range c.responses {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		c.responses = snapshot
		c.mu.Unlock()
		return fmt.Errorf("response %s not found", id)
	}
	c.responses = kept
	c.mu.Unlock()

	if err := c.store.DeleteResponse(ctx, id); err != nil {
		c.restore(snapshot)
		c.notify("Failed to delete RSVP response. Please try again.")
		return fmt.Errorf("delete response %s: %w", id, err)
	}
	return nil
}

func (c *GuestCache) restore(snapshot []Response) {
	c.mu.Lock()
	c.responses = snapshot
	c.mu.Unlock()
}
