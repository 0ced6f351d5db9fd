package main

import "github.com/kygo/wedding-site/utils"

// RSVPStats summarizes the full set of responses. Classification over the
// three status buckets is exhaustive: anything that is not a recognized
// status counts as pending, so attending + notAttending + pending always
// equals totalRSVPs.
type RSVPStats struct {
	TotalRSVPs     int `json:"totalRSVPs"`
	Attending      int `json:"attending"`
	NotAttending   int `json:"notAttending"`
	Pending        int `json:"pending"`
	TotalPartySize int `json:"totalPartySize"`
	PlusOnes       int `json:"plusOnes"`
}

// computeRSVPStats folds the full response set into summary counters.
// It performs no I/O and must be re-run whenever the source set changes.
func computeRSVPStats(responses []Response) RSVPStats {
	var stats RSVPStats
	for _, r := range responses {
		stats.TotalRSVPs++
		switch r.AttendanceStatus {
		case utils.StatusAttending:
			stats.Attending++
		case utils.StatusNotAttending:
			stats.NotAttending++
		default:
			stats.Pending++
		}
		stats.TotalPartySize += r.PartySize
		// Only the extra members of parties larger than one count as
		// plus-ones; party_size <= 1 contributes zero, never negative.
		if r.PartySize > 1 {
			stats.PlusOnes += r.PartySize - 1
		}
	}
	return stats
}

// ResponseRate is the fraction of responses with a recognized status,
// as a percentage. Zero responses yields 0, not a division error.
func (s RSVPStats) ResponseRate() float64 {
	if s.TotalRSVPs == 0 {
		return 0
	}
	return float64(s.Attending+s.NotAttending) / float64(s.TotalRSVPs) * 100
}

// AttendanceRate is the fraction of responses attending, as a percentage.
func (s RSVPStats) AttendanceRate() float64 {
	if s.TotalRSVPs == 0 {
		return 0
	}
	return float64(s.Attending) / float64(s.TotalRSVPs) * 100
}
