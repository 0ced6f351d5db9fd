package main

import "github.com/pocketbase/pocketbase/core"

// Response is one guest's attendance submission. The canonical copy lives
// in the rsvp_responses collection; handlers and the guest cache work on
// this value type.
type Response struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	AttendanceStatus    string `json:"attendance_status"`
	PartySize           int    `json:"party_size"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	InviteCode          string `json:"invite_code,omitempty"`
	Created             string `json:"created"`
}

// FAQ is one question/answer pair with a display position.
type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SortOrder int    `json:"sort_order"`
	IsEnabled bool   `json:"is_enabled"`
}

func responseFromRecord(r *core.Record) Response {
	return Response{
		ID:                  r.Id,
		Name:                r.GetString("name"),
		Email:               r.GetString("email"),
		AttendanceStatus:    r.GetString("attendance_status"),
		PartySize:           r.GetInt("party_size"),
		DietaryRestrictions: r.GetString("dietary_restrictions"),
		InviteCode:          r.GetString("invite_code"),
		Created:             r.GetString("created"),
	}
}

func faqFromRecord(r *core.Record) FAQ {
	return FAQ{
		ID:        r.Id,
		Question:  r.GetString("question"),
		Answer:    r.GetString("answer"),
		SortOrder: r.GetInt("sort_order"),
		IsEnabled: r.GetBool("is_enabled"),
	}
}
