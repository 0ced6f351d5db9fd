package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/kygo/wedding-site/migrations"
	"github.com/kygo/wedding-site/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
)

func main() {
	app := pocketbase.New()

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: false,
	})

	registerExportCommand(app)
	registerBackupCommand(app)

	guestCache := NewGuestCache(&pbResponseStore{app}, func(msg string) {
		log.Printf("[Guests] %s", msg)
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		configureSMTP(app)

		e.Router.BindFunc(securityHeadersMiddleware)

		registerRoutes(e, app, guestCache)

		serveFrontend(e)

		go scheduleBackups(app)

		return e.Next()
	})

	registerAuditHooks(app)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// getBaseURL returns the public origin used to build invite links.
func getBaseURL() string {
	if url := os.Getenv("PUBLIC_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8090"
}

// securityHeadersMiddleware adds security headers to all responses
func securityHeadersMiddleware(e *core.RequestEvent) error {
	h := e.Response.Header()

	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")

	// HSTS - enforce HTTPS for 1 year, include subdomains
	h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

	// img-src allows https: because gallery and background images live
	// on external object storage
	h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; connect-src 'self' https:; frame-ancestors 'none'")

	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

	return e.Next()
}

// registerRoutes sets up all custom API endpoints
func registerRoutes(e *core.ServeEvent, app *pocketbase.PocketBase, guestCache *GuestCache) {
	// Public endpoints (no auth, rate limited)
	e.Router.GET("/api/site-settings", handlePublicSettings(app)).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/faqs", handlePublicFAQs(app)).BindFunc(utils.RateLimitPublic)

	e.Router.POST("/api/rsvp", handlePublicRSVPSubmit(app)).BindFunc(utils.RateLimitSubmit)

	e.Router.GET("/api/invites/{code}", handlePublicInviteLookup(app)).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/guestbook", handlePublicGuestbookList(app)).BindFunc(utils.RateLimitPublic)
	e.Router.POST("/api/guestbook", handlePublicGuestbookPost(app)).BindFunc(utils.RateLimitSubmit)

	// Admin dashboard
	e.Router.GET("/api/admin/stats", handleAdminStats(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// RSVP response management
	e.Router.GET("/api/admin/rsvps", handleAdminListRSVPs(app, guestCache)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.PATCH("/api/admin/rsvps/{id}", handleAdminUpdateRSVP(app, guestCache)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.DELETE("/api/admin/rsvps/{id}", handleAdminDeleteRSVP(app, guestCache)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.GET("/api/admin/rsvps/export", handleAdminExportRSVPs(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// Site settings
	e.Router.PATCH("/api/admin/settings", handleAdminUpdateSettings(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.POST("/api/admin/settings/gallery", handleAdminAddGalleryImage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.DELETE("/api/admin/settings/gallery", handleAdminRemoveGalleryImage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.POST("/api/admin/settings/backgrounds", handleAdminAddBackgroundImage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.DELETE("/api/admin/settings/backgrounds", handleAdminRemoveBackgroundImage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.PUT("/api/admin/settings/backgrounds/selected", handleAdminSelectBackground(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// Image uploads
	e.Router.POST("/api/admin/images", handleAdminUploadImage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// FAQ management
	e.Router.GET("/api/admin/faqs", handleAdminListFAQs(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.POST("/api/admin/faqs", handleAdminCreateFAQ(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.PATCH("/api/admin/faqs/{id}", handleAdminUpdateFAQ(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.DELETE("/api/admin/faqs/{id}", handleAdminDeleteFAQ(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.PUT("/api/admin/faqs/reorder", handleAdminReorderFAQs(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// Custom invites
	e.Router.GET("/api/admin/invites", handleAdminListInvites(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.POST("/api/admin/invites", handleAdminCreateInvite(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.PATCH("/api/admin/invites/{id}/toggle", handleAdminToggleInvite(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.POST("/api/admin/invites/{id}/send", handleAdminSendInvite(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)
	e.Router.DELETE("/api/admin/invites/{id}", handleAdminDeleteInvite(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	// Guestbook moderation
	e.Router.DELETE("/api/admin/guestbook/{id}", handleAdminDeleteGuestbookMessage(app)).BindFunc(utils.RateLimitAuth).BindFunc(utils.RequireAdmin)

	log.Printf("[Routes] Registered API endpoints")
}

// serveFrontend serves the SPA frontend
func serveFrontend(e *core.ServeEvent) {
	staticDir := "./pb_public"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		staticDir = "../frontend/dist"
	}

	e.Router.GET("/{path...}", func(re *core.RequestEvent) error {
		path := re.Request.PathValue("path")

		// Don't handle API routes - let them 404 if not matched
		if len(path) >= 4 && path[:4] == "api/" {
			return re.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}

		if path == "" || path == "/" {
			return re.FileFS(os.DirFS(staticDir), "index.html")
		}

		if info, err := os.Stat(staticDir + "/" + path); err == nil && !info.IsDir() {
			return re.FileFS(os.DirFS(staticDir), path)
		}

		// SPA fallback - serve index.html for client-side routing
		return re.FileFS(os.DirFS(staticDir), "index.html")
	})
}

// registerAuditHooks logs auth events and superuser-dashboard edits
// made outside the custom API handlers.
func registerAuditHooks(app *pocketbase.PocketBase) {
	app.OnRecordAuthRequest("users").BindFunc(func(e *core.RecordAuthRequestEvent) error {
		utils.LogAuthEvent(app, "login", e.Record.Id, e.Record.GetString("email"), "success")
		return e.Next()
	})
}
