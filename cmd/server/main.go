package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ksuzuki/yaritai/internal/config"
	"github.com/ksuzuki/yaritai/internal/handler"
	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/ogp"
	"github.com/ksuzuki/yaritai/internal/planner"
	"github.com/ksuzuki/yaritai/internal/service"
	"github.com/ksuzuki/yaritai/internal/storage/sqlite"
	"github.com/ksuzuki/yaritai/pkg/logging"
)

// proposalReplyDelay is how long the canned planner "thinks" before
// answering an adjustment message.
const proposalReplyDelay = 1500 * time.Millisecond

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config.yaml)")
	flag.Parse()

	// .env is optional; absence is the normal case outside development.
	godotenv.Load()

	cfg := config.Load(*configFile)
	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SeedGroups(context.Background(), models.DefaultGroups()); err != nil {
		slog.Error("Failed to seed groups", "error", err)
		os.Exit(1)
	}

	router := handler.NewRouter(handler.Deps{
		Store:        store,
		Stocks:       service.NewStockService(store),
		Availability: service.NewAvailabilityService(store),
		Plans:        service.NewPlanService(store),
		Proposals:    planner.NewManager(proposalReplyDelay),
		OGP:          ogp.NewClient(cfg.OGPTimeout(), cfg.OGP.UserAgent),
	})

	// h2c lets HTTP/2 clients connect without TLS, e.g. behind a proxy
	// that terminates it.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr(), "db", cfg.DB.Path)
	if err := http.ListenAndServe(cfg.Addr(), h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
