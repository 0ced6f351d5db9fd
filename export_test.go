package main

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
)

func TestWriteResponsesCSV(t *testing.T) {
	responses := []Response{
		{ID: "r1", Name: "Ana", Email: "ana@example.com", AttendanceStatus: "attending", PartySize: 2, DietaryRestrictions: "vegetarian", Created: "2026-01-15 10:00:00"},
		{ID: "r2", Name: "Luis", Email: "luis@example.com", AttendanceStatus: "", PartySize: 1, InviteCode: "AB12CD", Created: "2026-01-16 11:30:00"},
	}

	var buf bytes.Buffer
	if err := writeResponsesCSV(csv.NewWriter(&buf), responses); err != nil {
		t.Fatalf("writeResponsesCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if !reflect.DeepEqual(records[0], exportHeader) {
		t.Errorf("header = %v, want %v", records[0], exportHeader)
	}
	if records[1][0] != "Ana" || records[1][2] != "attending" || records[1][3] != "2" {
		t.Errorf("row 1 = %v", records[1])
	}
	// Empty status exports as pending.
	if records[2][2] != "pending" {
		t.Errorf("row 2 status = %q, want pending", records[2][2])
	}
	if records[2][5] != "AB12CD" {
		t.Errorf("row 2 invite code = %q, want AB12CD", records[2][5])
	}
}

func TestWriteResponsesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResponsesCSV(csv.NewWriter(&buf), nil); err != nil {
		t.Fatalf("writeResponsesCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("rows = %d, want header only", len(records))
	}
}
