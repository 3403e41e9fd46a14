package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	r.Get("/", handleHealth(opts.Stores))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("BGMI Backend API", "/openapi.json", "/docs"))

	// Realtime notification channel, both transports over one broker.
	r.Get("/stream", handleStream(opts.Broker))
	r.Get("/ws", handleWS(logger, opts.Broker))

	// Writes.
	r.Post("/admins", handleAdminRegister(logger, opts.Stores, opts.AdminCode))
	r.Post("/adminlogin", handleAdminLogin(opts.Stores))
	r.Post("/logoutadmin", handleAdminLogout(opts.Stores))
	r.Post("/joinmatches", handleJoinMatch(opts.Stores, opts.Broker))
	r.Post("/tournament", handleCollectionWrite(opts.Stores, opts.Broker))

	// Reads. {collection} is validated against the allow-list.
	r.Get("/tournamentdetail/{id}", handleTournamentDetail(opts.Stores))
	r.Get("/{collection}", handleCollectionRead(opts.Stores))

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
