package main

import (
	"fmt"
	"log"
	"net/mail"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"github.com/kygo/wedding-site/utils"
)

// configureSMTP wires PocketBase's mailer to the SMTP relay from the
// environment. Without SMTP_PASSWORD the app still runs; confirmation
// emails are just skipped.
func configureSMTP(app *pocketbase.PocketBase) {
	password := os.Getenv("SMTP_PASSWORD")
	if password == "" {
		log.Println("[SMTP] no SMTP_PASSWORD configured, skipping SMTP setup")
		return
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.sendgrid.net"
	}
	username := os.Getenv("SMTP_USERNAME")
	if username == "" {
		username = "apikey"
	}
	senderAddress := os.Getenv("SMTP_SENDER_ADDRESS")
	if senderAddress == "" {
		log.Println("[SMTP] no SMTP_SENDER_ADDRESS configured, skipping SMTP setup")
		return
	}
	senderName := os.Getenv("SMTP_SENDER_NAME")
	if senderName == "" {
		senderName = "Wedding Site"
	}

	settings := app.Settings()
	if settings.SMTP.Enabled && settings.SMTP.Host == host && settings.Meta.SenderAddress == senderAddress {
		log.Println("[SMTP] already configured")
		return
	}

	settings.SMTP.Enabled = true
	settings.SMTP.Host = host
	settings.SMTP.Port = 587
	settings.SMTP.Username = username
	settings.SMTP.Password = password
	settings.SMTP.TLS = false

	settings.Meta.SenderName = senderName
	settings.Meta.SenderAddress = senderAddress

	if err := app.Save(settings); err != nil {
		log.Printf("[SMTP] failed to save settings: %v", err)
	} else {
		log.Println("[SMTP] settings saved")
	}
}

// wrapEmailHTML wraps content in the shared email shell styled after
// the website.
func wrapEmailHTML(coupleNames, content string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Georgia, 'Times New Roman', serif; line-height: 1.4; color: #3d3d3d; font-size: 16px; margin: 0; padding: 0; background: #faf7f2;">

    <div style="text-align: center; max-width: 620px; margin: auto; padding: 32px 24px 8px 24px;">
        <p style="font-size: 26px; letter-spacing: 2px; color: #8a6d4f; margin: 0;">` + coupleNames + `</p>
    </div>

    <div style="max-width: 620px; margin: auto; padding: 24px;">
        <div style="background: #ffffff; padding: 32px; border-radius: 8px; border: 1px solid #e8e0d4;">
` + content + `
        </div>
    </div>

    <div style="max-width: 620px; margin: auto; padding: 16px; text-align: center;">
        <p style="font-size: 13px; color: #a89a88; margin: 0;">With love, ` + coupleNames + `</p>
    </div>

</body>
</html>`
}

// sendRSVPConfirmation emails the guest a confirmation of what they
// submitted. Called from a goroutine; failures are logged, never
// surfaced to the submitter.
func sendRSVPConfirmation(app *pocketbase.PocketBase, record *core.Record) {
	email := record.GetString("email")
	name := record.GetString("name")
	if email == "" {
		return
	}
	if !app.Settings().SMTP.Enabled {
		return
	}

	coupleNames := "The Happy Couple"
	if settings, err := findSettingsRecord(app); err == nil {
		if names := settings.GetString("names"); names != "" {
			coupleNames = names
		}
	}

	var statusLine string
	switch record.GetString("attendance_status") {
	case utils.StatusAttending:
		statusLine = "We can't wait to celebrate with you!"
	case utils.StatusNotAttending:
		statusLine = "We're sorry you can't make it, but thank you for letting us know."
	default:
		statusLine = "Thank you for your response."
	}

	partyLine := ""
	if size := record.GetInt("party_size"); size > 1 {
		partyLine = fmt.Sprintf(`
            <p style="color: #4a4a4a; font-size: 16px; margin: 0 0 16px 0;">Party size: %d</p>`, size)
	}

	content := fmt.Sprintf(`
            <p style="color: #4a4a4a; font-size: 16px; margin: 0 0 16px 0;">Dear %s,</p>
            <p style="color: #4a4a4a; font-size: 16px; margin: 0 0 16px 0;">
                We received your RSVP. %s
            </p>
            %s
            <p style="color: #9a8b77; font-size: 14px; margin: 24px 0 0 0;">
                If anything changes, just reply to this email.
            </p>
`, name, statusLine, partyLine)

	msg := &mailer.Message{
		From:    mail.Address{Address: app.Settings().Meta.SenderAddress, Name: app.Settings().Meta.SenderName},
		To:      []mail.Address{{Address: email, Name: name}},
		Subject: "We received your RSVP",
		HTML:    wrapEmailHTML(coupleNames, content),
	}

	if err := app.NewMailClient().Send(msg); err != nil {
		log.Printf("[Email] failed to send RSVP confirmation to %s: %v", email, err)
		return
	}
	log.Printf("[Email] RSVP confirmation sent to %s", email)
}

// sendInviteEmail sends a personal invite link to a guest.
func sendInviteEmail(app *pocketbase.PocketBase, record *core.Record) error {
	email := record.GetString("guest_email")
	name := record.GetString("guest_name")
	if email == "" {
		return fmt.Errorf("invite %s has no guest email", record.Id)
	}

	coupleNames := "The Happy Couple"
	if settings, err := findSettingsRecord(app); err == nil {
		if names := settings.GetString("names"); names != "" {
			coupleNames = names
		}
	}

	inviteURL := buildInviteURL(getBaseURL(), record.GetString("invite_code"))

	messageLine := ""
	if custom := record.GetString("custom_message"); custom != "" {
		messageLine = fmt.Sprintf(`
            <p style="color: #4a4a4a; font-size: 16px; font-style: italic; margin: 0 0 16px 0;">%s</p>`, custom)
	}

	content := fmt.Sprintf(`
            <p style="color: #4a4a4a; font-size: 16px; margin: 0 0 16px 0;">Dear %s,</p>
            <p style="color: #4a4a4a; font-size: 16px; margin: 0 0 16px 0;">
                You're invited to our wedding! Please use your personal link below to RSVP.
            </p>
            %s
            <div style="text-align: center; margin: 32px 0;">
                <a href="%s" style="display: inline-block; background: #8a6d4f; color: #ffffff; padding: 14px 32px; text-decoration: none; border-radius: 6px; font-size: 16px;">
                    RSVP now
                </a>
            </div>
            <p style="color: #9a8b77; font-size: 14px; margin: 24px 0 8px 0;">
                Copy and paste if the link doesn't work:
            </p>
            <div style="background: #faf7f2; padding: 12px 16px; border-radius: 6px; margin: 0;">
                <p style="color: #8a6d4f; font-size: 13px; font-family: 'Courier New', Courier, monospace; word-break: break-all; margin: 0;">
                    %s
                </p>
            </div>
`, name, messageLine, inviteURL, inviteURL)

	msg := &mailer.Message{
		From:    mail.Address{Address: app.Settings().Meta.SenderAddress, Name: app.Settings().Meta.SenderName},
		To:      []mail.Address{{Address: email, Name: name}},
		Subject: "You're invited!",
		HTML:    wrapEmailHTML(coupleNames, content),
	}

	if err := app.NewMailClient().Send(msg); err != nil {
		log.Printf("[Email] failed to send invite to %s: %v", email, err)
		return err
	}
	log.Printf("[Email] invite sent to %s", email)
	return nil
}
