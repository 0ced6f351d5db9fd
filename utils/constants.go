package utils

// Collection names
const (
	CollectionUsers             = "users"
	CollectionResponses         = "rsvp_responses"
	CollectionSiteSettings      = "site_settings"
	CollectionFAQs              = "faqs"
	CollectionCustomInvites     = "custom_invites"
	CollectionGuestbookMessages = "guestbook_messages"
	CollectionAuditLogs         = "audit_logs"
)

// Attendance status values. An empty or unrecognized status counts as
// pending in every aggregate.
const (
	StatusAttending    = "attending"
	StatusNotAttending = "not attending"
)

var AttendanceStatuses = []string{StatusAttending, StatusNotAttending}

// Field names
const (
	FieldRole      = "role"
	FieldSortOrder = "sort_order"
)

// User roles
var UserRoles = []string{"admin", "viewer"}

// Settings singleton key (site_settings holds exactly one row)
const SettingsKey = "main"

// Party size bounds accepted on RSVP submission
const (
	MinPartySize = 1
	MaxPartySize = 10
)

// File size limit for gallery/background uploads (in bytes)
const MaxImageFileSize = 10485760 // 10MB

// Free-text length limits
const (
	MaxNameLength      = 200
	MaxDietaryLength   = 1000
	MaxGuestbookLength = 2000
)
