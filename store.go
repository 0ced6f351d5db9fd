package main

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase"

	"github.com/kygo/wedding-site/utils"
)

// pbResponseStore persists RSVP edits and deletions against the
// rsvp_responses collection. It backs the in-memory guest cache.
type pbResponseStore struct {
	app *pocketbase.PocketBase
}

func (s *pbResponseStore) UpdateResponse(ctx context.Context, resp Response) error {
	record, err := s.app.FindRecordById(utils.CollectionResponses, resp.ID)
	if err != nil {
		return fmt.Errorf("response %s not found: %w", resp.ID, err)
	}

	record.Set("name", resp.Name)
	record.Set("email", resp.Email)
	record.Set("attendance_status", resp.AttendanceStatus)
	record.Set("party_size", resp.PartySize)
	record.Set("dietary_restrictions", resp.DietaryRestrictions)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("failed to save response %s: %w", resp.ID, err)
	}
	return nil
}

func (s *pbResponseStore) DeleteResponse(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById(utils.CollectionResponses, id)
	if err != nil {
		return fmt.Errorf("response %s not found: %w", id, err)
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete response %s: %w", id, err)
	}
	return nil
}

// pbFAQStore writes per-item sort positions for the faqs collection.
type pbFAQStore struct {
	app *pocketbase.PocketBase
}

func (s *pbFAQStore) UpdateFAQPosition(ctx context.Context, id string, sortOrder int) error {
	record, err := s.app.FindRecordById(utils.CollectionFAQs, id)
	if err != nil {
		return fmt.Errorf("faq %s not found: %w", id, err)
	}
	record.Set("sort_order", sortOrder)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("failed to save faq %s: %w", id, err)
	}
	return nil
}

// loadResponses pulls every RSVP response ordered by newest first.
func loadResponses(app *pocketbase.PocketBase) ([]Response, error) {
	records, err := app.FindRecordsByFilter(
		utils.CollectionResponses,
		"id != ''",
		"-created",
		0,
		0,
	)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(records))
	for _, r := range records {
		responses = append(responses, responseFromRecord(r))
	}
	return responses, nil
}
