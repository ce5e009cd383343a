package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/handler"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/metrics"
	"github.com/verdantloop/chronogarden/internal/persistence"
)

// Server is the HTTP front of the garden.
type Server struct {
	httpServer *http.Server
	hub        *stateHub
}

// NewServer wires the router. The collaborator services may be disabled;
// their routes then answer with empty data or 404.
func NewServer(
	port int,
	eng *engine.Engine,
	store *persistence.Store,
	marketSvc handler.MarketService,
	leaderboardSvc handler.LeaderboardService,
	advisorSvc handler.AdvisorService,
	bus event.Bus,
) *Server {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Handle("/metrics", promhttp.Handler())

	hub := newStateHub(eng)
	bus.Subscribe(event.StateChanged, hub.onStateChanged)
	r.Get("/ws", hub.handleWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", handler.HandleGetState(eng))
		r.Get("/catalog", handler.HandleGetCatalog(eng.Catalog()))
		r.Get("/crops", handler.HandleGetCrops(eng))
		r.Get("/synergies", handler.HandleGetSynergies(eng))

		r.Route("/actions", func(r chi.Router) {
			r.Post("/plant", handler.HandlePlantCrop(eng))
			r.Post("/harvest", handler.HandleHarvestCrop(eng))
			r.Post("/era/set", handler.HandleSetEra(eng))
			r.Post("/era/unlock", handler.HandleUnlockEra(eng))
			r.Post("/energy/add", handler.HandleAddEnergy(eng))
			r.Post("/energy/spend", handler.HandleSpendEnergy(eng))
			r.Post("/resource/update", handler.HandleUpdateResource(eng))
			r.Post("/automation/add", handler.HandleAddAutomation(eng))
			r.Post("/automation/remove", handler.HandleRemoveAutomation(eng))
			r.Post("/upgrade", handler.HandlePurchaseUpgrade(eng))
			r.Post("/upgrade/permanent", handler.HandlePurchasePermanentUpgrade(eng))
			r.Post("/prestige", handler.HandlePrestige(eng))
			r.Post("/weather", handler.HandleSetWeather(eng))
			r.Post("/names", handler.HandleSetNames(eng))
		})

		r.Route("/visitor", func(r chi.Router) {
			r.Get("/", handler.HandleGetVisitor(eng))
			r.Post("/check", handler.HandleCheckVisitorSpawn(eng))
			r.Post("/dismiss", handler.HandleDismissVisitor(eng))
		})
		r.Post("/quest/accept", handler.HandleAcceptQuest(eng))

		r.Route("/market", func(r chi.Router) {
			r.Get("/listings", handler.HandleGetListings(marketSvc))
			r.Post("/listings", handler.HandleCreateListing(eng, marketSvc))
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", handler.HandleGetStandings(leaderboardSvc))
			r.Post("/push", handler.HandlePushScore(eng, leaderboardSvc))
		})

		r.Get("/advisor/suggestion", handler.HandleGetSuggestion(eng, advisorSvc))

		r.Route("/saves", func(r chi.Router) {
			r.Get("/", handler.HandleListSaves(store))
			r.Post("/{slot}", handler.HandleSaveGame(eng, store))
			r.Post("/{slot}/load", handler.HandleLoadGame(eng, store))
			r.Delete("/{slot}", handler.HandleDeleteSave(store))
		})
		r.Get("/export", handler.HandleExportState(eng))
		r.Post("/import", handler.HandleImportState(eng))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		hub: hub,
	}
}

// Start starts the server.
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully, closing websocket clients first.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.close()
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints would drown the log.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}
