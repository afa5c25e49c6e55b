package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ksuzuki/yaritai/internal/middleware"
	"github.com/ksuzuki/yaritai/internal/ogp"
	"github.com/ksuzuki/yaritai/internal/planner"
	"github.com/ksuzuki/yaritai/internal/service"
	"github.com/ksuzuki/yaritai/internal/storage"
)

// Deps bundles everything the router needs.
type Deps struct {
	Store        storage.Store
	Stocks       *service.StockService
	Availability *service.AvailabilityService
	Plans        *service.PlanService
	Proposals    *planner.Manager
	OGP          *ogp.Client
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(d Deps) *gin.Engine {
	stockH := NewStockHandler(d.Stocks)
	groupH := NewGroupHandler(d.Store, d.Availability)
	planH := NewPlanHandler(d.Plans)
	proposalH := NewProposalHandler(d.Proposals, d.Plans)
	ogpH := NewOGPHandler(d.OGP)
	shareH := NewShareHandler()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", sessionHeader},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/share", shareH.Receive)
	r.POST("/share", shareH.Receive)

	api := r.Group("/api")
	{
		api.GET("/ogp", ogpH.Fetch)
		api.GET("/home", stockH.Home)

		api.POST("/stocks", stockH.Create)
		api.GET("/stocks", stockH.List)
		api.GET("/stocks/:id", stockH.Get)
		api.PATCH("/stocks/:id", stockH.Update)
		api.DELETE("/stocks/:id", stockH.Delete)
		api.POST("/stocks/:id/share", stockH.Share)
		api.POST("/stocks/:id/reaction", stockH.React)
		api.POST("/stocks/:id/read", stockH.MarkRead)

		api.GET("/groups", groupH.List)
		api.GET("/groups/:id", groupH.Get)
		api.POST("/groups/:id/availability", groupH.ToggleAvailability)
		api.GET("/groups/:id/calendar", groupH.Calendar)

		api.POST("/proposals/generate", proposalH.Generate)
		api.GET("/proposals", proposalH.List)
		api.GET("/proposals/adjust", proposalH.Adjust)
		api.POST("/proposals/adjust/messages", proposalH.Send)
		api.POST("/proposals/adjust/apply", proposalH.ApplySuggestion)
		api.POST("/proposals/adjust/keep", proposalH.KeepAdjusted)
		api.POST("/proposals/reset", proposalH.Reset)
		api.POST("/proposals/:id/keep", proposalH.Keep)
		api.DELETE("/proposals/:id/keep", proposalH.Unkeep)
		api.POST("/proposals/:id/adjust", proposalH.StartAdjust)
		api.POST("/proposals/:id/convert", proposalH.Convert)

		api.POST("/plans", planH.Create)
		api.GET("/plans", planH.List)
		api.GET("/plans/:id", planH.Get)
		api.POST("/plans/:id/confirm", planH.Confirm)
	}

	return r
}
