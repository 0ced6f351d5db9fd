package main

import (
	"testing"
)

func TestComputeRSVPStats(t *testing.T) {
	tests := []struct {
		name      string
		responses []Response
		want      RSVPStats
	}{
		{
			name:      "empty",
			responses: nil,
			want:      RSVPStats{},
		},
		{
			name: "mixed statuses with plus ones",
			responses: []Response{
				{ID: "a", AttendanceStatus: "attending", PartySize: 2},
				{ID: "b", AttendanceStatus: "attending", PartySize: 1},
				{ID: "c", AttendanceStatus: "not attending", PartySize: 1},
			},
			want: RSVPStats{
				TotalRSVPs:     3,
				Attending:      2,
				NotAttending:   1,
				Pending:        0,
				TotalPartySize: 4,
				PlusOnes:       1,
			},
		},
		{
			name: "unknown status counts as pending",
			responses: []Response{
				{ID: "a", AttendanceStatus: "maybe", PartySize: 1},
				{ID: "b", AttendanceStatus: "", PartySize: 3},
			},
			want: RSVPStats{
				TotalRSVPs:     2,
				Pending:        2,
				TotalPartySize: 4,
				PlusOnes:       2,
			},
		},
		{
			name: "zero party size contributes no plus ones",
			responses: []Response{
				{ID: "a", AttendanceStatus: "attending", PartySize: 0},
			},
			want: RSVPStats{
				TotalRSVPs: 1,
				Attending:  1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRSVPStats(tt.responses)
			if got != tt.want {
				t.Errorf("computeRSVPStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatsBucketsAreExhaustive(t *testing.T) {
	responses := []Response{
		{ID: "a", AttendanceStatus: "attending"},
		{ID: "b", AttendanceStatus: "not attending"},
		{ID: "c", AttendanceStatus: "declined"},
		{ID: "d", AttendanceStatus: ""},
		{ID: "e", AttendanceStatus: "ATTENDING"}, // case sensitive, so pending
	}
	got := computeRSVPStats(responses)
	if sum := got.Attending + got.NotAttending + got.Pending; sum != got.TotalRSVPs {
		t.Errorf("buckets sum to %d, want %d", sum, got.TotalRSVPs)
	}
}

func TestRates(t *testing.T) {
	var empty RSVPStats
	if got := empty.ResponseRate(); got != 0 {
		t.Errorf("empty ResponseRate() = %v, want 0", got)
	}
	if got := empty.AttendanceRate(); got != 0 {
		t.Errorf("empty AttendanceRate() = %v, want 0", got)
	}

	stats := RSVPStats{TotalRSVPs: 4, Attending: 2, NotAttending: 1, Pending: 1}
	if got := stats.ResponseRate(); got != 75 {
		t.Errorf("ResponseRate() = %v, want 75", got)
	}
	if got := stats.AttendanceRate(); got != 50 {
		t.Errorf("AttendanceRate() = %v, want 50", got)
	}
}
