package utils

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// AuditEntry represents an audit log entry
type AuditEntry struct {
	UserID       string
	UserEmail    string
	Action       string // create, update, delete, login, rsvp_submit, invite_create, reorder, export
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	Changes      map[string]any
	Metadata     map[string]any
	Status       string // success, failure
	ErrorMessage string
}

// LogAudit creates an audit log entry asynchronously to avoid blocking requests
func LogAudit(app *pocketbase.PocketBase, entry AuditEntry) {
	go func() {
		collection, err := app.FindCollectionByNameOrId(CollectionAuditLogs)
		if err != nil {
			log.Printf("[Audit] Collection not found: %v", err)
			return
		}

		record := core.NewRecord(collection)
		record.Set("user_id", entry.UserID)
		record.Set("user_email", entry.UserEmail)
		record.Set("action", entry.Action)
		record.Set("resource_type", entry.ResourceType)
		record.Set("resource_id", entry.ResourceID)
		record.Set("ip_address", entry.IPAddress)
		record.Set("user_agent", entry.UserAgent)
		record.Set("changes", entry.Changes)
		record.Set("metadata", entry.Metadata)
		record.Set("status", entry.Status)
		record.Set("error_message", entry.ErrorMessage)

		if err := app.Save(record); err != nil {
			log.Printf("[Audit] Failed to save audit log: %v", err)
		}
	}()
}

// LogFromRequest fills in request context (IP, user agent, auth) and
// records the entry. Status defaults to success.
func LogFromRequest(app *pocketbase.PocketBase, re *core.RequestEvent, entry AuditEntry) {
	entry.IPAddress = re.RealIP()
	entry.UserAgent = re.Request.UserAgent()
	if entry.Status == "" {
		entry.Status = "success"
	}

	if re.Auth != nil {
		entry.UserID = re.Auth.Id
		entry.UserEmail = re.Auth.GetString("email")
	}

	LogAudit(app, entry)
}

// LogAuthEvent logs authentication events
func LogAuthEvent(app *pocketbase.PocketBase, action, userID, userEmail, status string) {
	LogAudit(app, AuditEntry{
		UserID:       userID,
		UserEmail:    userEmail,
		Action:       action,
		ResourceType: CollectionUsers,
		ResourceID:   userID,
		Status:       status,
	})
}
