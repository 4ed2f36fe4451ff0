package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// League API (public)
	r.Get("/api/leaderboard", h.handleGetLeaderboard)
	r.Get("/api/picks-by-race", h.handleGetPicksByRace)
	r.Get("/api/analytics/{profileID}", h.handleGetAnalytics)
	r.Get("/api/races", h.handleListRaces)
	r.Get("/api/races/{id}", h.handleGetRace)
	r.Get("/api/drivers", h.handleListActiveDrivers)

	// Participants & picks (public)
	r.Post("/api/participants", h.handleRegister)
	r.Get("/api/participants/{profileID}", h.handleGetParticipant)
	r.Post("/api/picks", h.handleSubmitPick)
	r.Get("/api/picks/{profileID}/{raceID}", h.handleGetPick)

	// Cron (public, idempotent)
	r.Post("/api/cron/finalize-winners", h.handleFinalizeDueWinners)

	// Auth routes (public)
	r.Post("/api/admin/login", h.handleLogin)
	r.Post("/api/admin/logout", h.handleLogout)

	// Commissioner API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Races
		r.Get("/api/admin/races", h.handleListAllRaces)
		r.Post("/api/admin/races", h.handleCreateRace)
		r.Put("/api/admin/races/{id}", h.handleUpdateRace)
		r.Post("/api/admin/races/{id}/archive", h.handleArchiveRace)
		r.Put("/api/admin/races/{id}/official-speed", h.handleSetOfficialSpeed)

		// Results
		r.Get("/api/admin/races/{id}/results", h.handleGetResults)
		r.Put("/api/admin/races/{id}/results", h.handleSaveResults)

		// Fantasy winner
		r.Post("/api/admin/races/{id}/winner", h.handleSetManualWinner)
		r.Post("/api/admin/races/{id}/winner/recalculate", h.handleRequestAutoWinner)

		// QR Codes
		r.Get("/api/admin/races/{id}/picks-qr", h.handlePicksQR)

		// Drivers
		r.Get("/api/admin/drivers", h.handleListDrivers)
		r.Post("/api/admin/drivers", h.handleCreateDriver)
		r.Put("/api/admin/drivers/{id}", h.handleUpdateDriver)

		// Participants
		r.Get("/api/admin/participants", h.handleListParticipants)
		r.Put("/api/admin/participants/{profileID}", h.handleUpdateParticipant)

		// Settings
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)
		r.Get("/api/admin/stats", h.handleGetStats)

		// Database Management
		r.Post("/api/admin/reset-database", h.handleResetDatabase)
		r.Post("/api/admin/seed-demo-data", h.handleSeedDemoData)
	})

	return r
}
