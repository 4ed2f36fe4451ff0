package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/c21matthewm/mound-hounds-pickem/internal/auth"
	"github.com/c21matthewm/mound-hounds-pickem/internal/handlers"
	"github.com/c21matthewm/mound-hounds-pickem/internal/logger"
	"github.com/c21matthewm/mound-hounds-pickem/internal/repository"
	"github.com/c21matthewm/mound-hounds-pickem/internal/services"
)

// App holds all application dependencies
type App struct {
	log          logger.Logger
	handlers     *handlers.Handlers
	repo         *repository.Repository
	winner       services.WinnerServicer
	cancelTicker context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, dbPath string, adminAuth *auth.Auth) (*App, error) {
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, err
	}

	// Initialize services
	settingsService := services.NewSettingsService(log, repo)
	participantService := services.NewParticipantService(log, repo)
	raceService := services.NewRaceService(log, repo)
	driverService := services.NewDriverService(log, repo)
	pickService := services.NewPickService(log, repo)
	winnerService := services.NewWinnerService(log, repo, settingsService)
	resultService := services.NewResultService(log, repo, winnerService)
	leaderboardService := services.NewLeaderboardService(log, repo)
	picksViewService := services.NewPicksViewService(log, repo)
	analyticsService := services.NewAnalyticsService(log, repo, settingsService)
	seedService := services.NewSeedService(log, repo, winnerService)

	h := handlers.New(
		participantService,
		raceService,
		driverService,
		pickService,
		resultService,
		winnerService,
		leaderboardService,
		picksViewService,
		analyticsService,
		settingsService,
		seedService,
		adminAuth,
		log,
	)

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
		winner:   winnerService,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// StartFinalizeTicker runs the winner finalization sweep on an
// interval. An interval of zero disables the ticker; deployments can
// hit the cron endpoint from an external scheduler instead.
func (a *App) StartFinalizeTicker(interval time.Duration) {
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelTicker = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed, err := a.winner.FinalizeDue(ctx)
				if err != nil {
					a.log.Warn("Winner finalization sweep failed", "error", err)
					continue
				}
				if processed > 0 {
					a.log.Info("Winner finalization sweep", "processed", processed)
				}
			}
		}
	}()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelTicker != nil {
		a.cancelTicker()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	// Set default base URL if not configured, using detected LAN IP
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, addr)
	a.setDefaultBaseURL(baseURL)

	a.log.Info("Server starting", "url", baseURL)
	a.log.Info("Leaderboard API", "url", baseURL+"/api/leaderboard")
	return http.ListenAndServe(addr, a.Router())
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, _ := a.repo.GetSetting(ctx, "base_url")

	// Set default if empty or if current value uses localhost
	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.repo.SetSetting(ctx, "base_url", baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		// Skip down, loopback, and point-to-point interfaces
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			// Skip loopback
			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	// Fall back to any non-loopback if no private address found
	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
