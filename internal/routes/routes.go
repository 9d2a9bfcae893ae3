package routes

import (
	"net/http"

	"github.com/dhiselink/dhiselink/internal/app"
	"github.com/dhiselink/dhiselink/internal/handler"
	"github.com/dhiselink/dhiselink/internal/middleware"
	"github.com/dhiselink/dhiselink/internal/ui"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	seo := handler.NewSEOHandler(app.Cfg, app.ProfileService, app.ContentRepo)
	legal := handler.NewLegalHandler(app.LegalService)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.Cfg)
	account := handler.NewAccountHandler(app.AuthService, app.UserService, app.ProfileService, app.FileService)
	profile := handler.NewProfileHandler(app.ProfileService)
	content := handler.NewContentHandler(app.ContentService)
	dashboard := handler.NewDashboardHandler(app.ListingService, app.ContentService)
	directory := handler.NewDirectoryHandler(app.ProfileService, app.ContentRepo)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Legal pages
	mux.HandleFunc("GET /legal/{page}", legal.ShowPage)

	// Public directory
	mux.HandleFunc("GET /directory/organizations", directory.Organizations)
	mux.HandleFunc("GET /directory/individuals", directory.Individuals)
	mux.HandleFunc("GET /directory/profiles/{slug}", directory.Profile)
	mux.HandleFunc("GET /directory/{type}", directory.Listings)
	mux.HandleFunc("GET /directory/{type}/{key}", directory.Listing)

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	// OAuth
	mux.HandleFunc("GET /auth/google", rateLimiter(middleware.RequireGuest(auth.GoogleAuth)))
	mux.HandleFunc("GET /auth/google/callback", rateLimiter(auth.GoogleCallback))
	mux.HandleFunc("GET /auth/github", rateLimiter(middleware.RequireGuest(auth.GitHubAuth)))
	mux.HandleFunc("GET /auth/github/callback", rateLimiter(auth.GitHubCallback))

	// Token Verifications
	mux.HandleFunc("GET /auth/magic-link/{token}", auth.VerifyMagicLink)
	mux.HandleFunc("GET /auth/forgot-password/{token}", auth.VerifyForgotPassword)
	mux.HandleFunc("GET /auth/verify-email-change/{token}", auth.VerifyEmailChange)

	// Auth Actions
	mux.HandleFunc("POST /auth/magic-link", rateLimiter(middleware.RequireGuest(auth.SendMagicLink)))
	mux.HandleFunc("POST /auth/password", rateLimiter(middleware.RequireGuest(auth.PasswordAuth)))
	mux.HandleFunc("POST /auth/forgot-password", rateLimiter(middleware.RequireGuest(auth.ForgotPassword)))
	mux.HandleFunc("POST /auth/onboarding", middleware.RequireAuth(profile.CompleteOnboarding))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Dashboard
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.MyContent))

	// Content submission
	mux.HandleFunc("GET /app/content/types", middleware.RequireAuth(content.AvailableTypes))
	mux.HandleFunc("POST /app/content", middleware.RequireAuth(content.Create))
	mux.HandleFunc("PUT /app/content/{type}/{id}", middleware.RequireAuth(content.Update))
	mux.HandleFunc("DELETE /app/content/{type}/{id}", middleware.RequireAuth(content.Delete))

	// Profile
	mux.HandleFunc("GET /app/profile", middleware.RequireAuth(profile.Me))
	mux.HandleFunc("PATCH /app/profile/name", middleware.RequireAuth(profile.UpdateName))

	// Account (Security & Identity)
	mux.HandleFunc("PATCH /app/account/email", middleware.RequireAuth(account.ChangeEmail))
	mux.HandleFunc("POST /app/account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("POST /app/account/password/set", middleware.RequireAuth(account.SetPassword))
	mux.HandleFunc("DELETE /app/account/password", middleware.RequireAuth(account.RemovePassword))
	mux.HandleFunc("POST /app/account/avatar", middleware.RequireAuth(account.UploadAvatar))
	mux.HandleFunc("DELETE /app/account/avatar", middleware.RequireAuth(account.DeleteAvatar))
	mux.HandleFunc("POST /app/account/logo", middleware.RequireAuth(account.UploadLogo))
	mux.HandleFunc("POST /app/account/resume", middleware.RequireAuth(account.UploadResume))
	mux.HandleFunc("DELETE /app/account", middleware.RequireAuth(account.DeleteAccount))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		ui.NotFound(w)
	})

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders, // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService),
		middleware.WithURLPath,
	)

	return handler
}
